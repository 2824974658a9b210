package logic

import (
	"mime/multipart"
	"testing"
	"time"

	"github.com/go-crew/crew/internal/crew/model"
	"github.com/go-crew/crew/pkg/ctx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAssetRepo struct {
	assets map[string]*model.Asset
}

func newFakeAssetRepo() *fakeAssetRepo {
	return &fakeAssetRepo{assets: make(map[string]*model.Asset)}
}

func (r *fakeAssetRepo) CreateAsset(asset *model.Asset) error {
	r.assets[asset.AssetId] = asset
	return nil
}

func (r *fakeAssetRepo) GetByAssetId(assetId string) (*model.Asset, error) {
	return r.assets[assetId], nil
}

func (r *fakeAssetRepo) ListByBrand(brandId string) ([]*model.Asset, error) {
	var out []*model.Asset
	for _, a := range r.assets {
		if a.BrandId == brandId {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeAssetRepo) DeleteAsset(assetId string) error {
	delete(r.assets, assetId)
	return nil
}

type fakeStore struct {
	objects map[string][]byte
}

func newFakeStore() *fakeStore {
	return &fakeStore{objects: make(map[string][]byte)}
}

func (s *fakeStore) PutObject(_ *ctx.Context, objectName string, _ *multipart.FileHeader, _ string) (string, error) {
	s.objects[objectName] = []byte("data")
	return objectName, nil
}

func (s *fakeStore) GetObject(_ *ctx.Context, objectName string) ([]byte, error) {
	return s.objects[objectName], nil
}

func (s *fakeStore) Upload(c *ctx.Context, objectName string, file *multipart.FileHeader, contentType string) (string, error) {
	return s.PutObject(c, objectName, file, contentType)
}

func (s *fakeStore) Download(_ *ctx.Context, objectName string) ([]byte, error) {
	return s.objects[objectName], nil
}

func (s *fakeStore) Delete(_ *ctx.Context, objectName string) error {
	delete(s.objects, objectName)
	return nil
}

func newAssetFixture() (*AssetLogic, *fakeAssetRepo, *fakeBrandRepo, *fakeStore) {
	brandRepo := newFakeBrandRepo(&model.Brand{
		BrandId: "brand-1",
		Name:    "acme",
		OwnerId: "owner-1",
		TeamMembers: []model.BrandMember{
			{UserId: "member-1", Role: model.BrandRoleEditor, TeamId: "team-1", AddedAt: time.Now()},
		},
	})
	assetRepo := newFakeAssetRepo()
	store := newFakeStore()
	al := NewAssetLogic(nil, assetRepo, brandRepo, store, "minio")
	return al, assetRepo, brandRepo, store
}

func TestUploadAsset_RequiresBrandAccess(t *testing.T) {
	al, assetRepo, _, store := newAssetFixture()

	file := &multipart.FileHeader{Filename: "logo.png", Size: 4}
	_, err := al.Upload("stranger-1", "brand-1", file, "image/png")
	assert.ErrorIs(t, err, ErrBrandAccessDenied)
	assert.Empty(t, assetRepo.assets)
	assert.Empty(t, store.objects)
}

func TestUploadAsset_BrandMemberAndOwnerAllowed(t *testing.T) {
	al, _, _, _ := newAssetFixture()

	file := &multipart.FileHeader{Filename: "logo.png", Size: 4}
	asset, err := al.Upload("member-1", "brand-1", file, "image/png")
	require.NoError(t, err)
	assert.Equal(t, "brand-1", asset.BrandId)
	assert.Equal(t, "member-1", asset.UploaderId)

	_, err = al.Upload("owner-1", "brand-1", file, "image/png")
	require.NoError(t, err)
}

func TestUploadAsset_UnknownBrand(t *testing.T) {
	al, _, _, _ := newAssetFixture()

	file := &multipart.FileHeader{Filename: "logo.png", Size: 4}
	_, err := al.Upload("owner-1", "brand-x", file, "image/png")
	assert.ErrorIs(t, err, ErrBrandNotFound)
}

func TestDownloadAsset_RequiresBrandAccess(t *testing.T) {
	al, _, _, _ := newAssetFixture()

	file := &multipart.FileHeader{Filename: "logo.png", Size: 4}
	asset, err := al.Upload("member-1", "brand-1", file, "image/png")
	require.NoError(t, err)

	_, _, err = al.Download(asset.AssetId, "stranger-1")
	assert.ErrorIs(t, err, ErrBrandAccessDenied)

	got, data, err := al.Download(asset.AssetId, "owner-1")
	require.NoError(t, err)
	assert.Equal(t, asset.AssetId, got.AssetId)
	assert.NotEmpty(t, data)
}

func TestListAssets_RequiresBrandAccess(t *testing.T) {
	al, _, _, _ := newAssetFixture()

	file := &multipart.FileHeader{Filename: "logo.png", Size: 4}
	_, err := al.Upload("member-1", "brand-1", file, "image/png")
	require.NoError(t, err)

	_, err = al.ListByBrand("brand-1", "stranger-1")
	assert.ErrorIs(t, err, ErrBrandAccessDenied)

	assets, err := al.ListByBrand("brand-1", "member-1")
	require.NoError(t, err)
	assert.Len(t, assets, 1)
}

func TestDeleteAsset_UploaderOnly(t *testing.T) {
	al, assetRepo, _, _ := newAssetFixture()

	file := &multipart.FileHeader{Filename: "logo.png", Size: 4}
	asset, err := al.Upload("member-1", "brand-1", file, "image/png")
	require.NoError(t, err)

	err = al.Delete(asset.AssetId, "owner-1")
	assert.ErrorIs(t, err, ErrInsufficientCapability)

	err = al.Delete(asset.AssetId, "member-1")
	require.NoError(t, err)
	assert.Empty(t, assetRepo.assets)
}
