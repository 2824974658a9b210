// Copyright 2025 Crew Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package http

var (
	Failed                        = failed(500, "Request failed")
	RequestParameterParsingFailed = failed(5001, "Request parameter parsing failed")
	TeamIdIsEmpty                 = failed(5002, "Team id is empty")
	BrandIdIsEmpty                = failed(5003, "Brand id is empty")
	InvitationIdIsEmpty           = failed(5004, "Invitation id is empty")

	// Unauthorized 401
	Unauthorized         = failed(4401, "Unauthorized")
	AuthenticationFailed = failed(4402, "Authentication failed")
	AuthorizationEmpty   = failed(4404, "Authorization is empty")
	InvalidToken         = failed(4405, "Invalid token")
	TokenBeEmpty         = failed(4406, "Token cannot be empty")
	TokenExpired         = failed(4407, "Token is expired")
	TokenFormatIncorrect = failed(4408, "Token format is incorrect")

	// BadRequest 400
	BadRequest = failed(4000, "Bad request")
	NotFound   = failed(4004, "Not found")

	// Forbidden 403
	Forbidden        = failed(4030, "Forbidden")
	PermissionDenied = failed(4031, "Permission denied")

	// NotAMember 成员校验：非团队成员一律拒绝，不降级为 viewer
	NotAMember             = failed(4032, "Not a member of this team")
	InsufficientCapability = failed(4033, "Insufficient capability for this operation")

	TeamNotFound         = failed(4043, "Team not found")
	InvitationNotFound   = failed(4044, "Invitation not found")
	BrandNotFound        = failed(4045, "Brand not found")
	AssetNotFound        = failed(4046, "Asset not found")
	InvitationExpired    = failed(4100, "Invitation has expired")
	InvitationNotForYou  = failed(4101, "This invitation is not for you")
	AlreadyMember        = failed(4102, "User is already a team member")
	DuplicateAssignment  = failed(4103, "Brand is already assigned to this team")
	OwnerCannotBeRemoved = failed(4104, "Team owner cannot be removed")
	UnknownPermissionKey = failed(4105, "Unknown permission key")

	InternalError = failed(5000, "Internal error, please contact the administrator")

	UserNotExist                  = failed(4041, "User does not exist")
	UserAlreadyExist              = failed(4042, "User already exists")
	UserIncorrectPassword         = failed(4047, "User incorrect password")
	UsernameArePasswordIsRequired = failed(4048, "Username and password are required")

	UnsupportedProviders = failed(4501, "Unsupported provider")
	ProviderIsRequired   = failed(4502, "Provider is required")
	TokenExchangeFailed  = failed(4503, "Token exchange failed")
)

var (
	Success = success(200, "Request Success")
)

// failed 构造函数
func failed(code int, msg string) *Response {
	return &Response{
		Code: code,
		Msg:  msg,
	}
}

// success 构造函数
func success(code int, msg string) *Response {
	return &Response{
		Code: code,
		Msg:  msg,
	}
}
