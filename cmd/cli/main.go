package main

import (
	"github.com/go-crew/crew/pkg/version"
	"github.com/spf13/cobra"
)

/**
 * @author: gagral.x@gmail.com
 * @time: 2025/8/29 12:16
 * @file: main.go
 * @description: cli program
 */

var rootCmd = &cobra.Command{
	Use:   "crew-cli",
	Short: "crew cli is a command line tool",
	Long:  "crew cli is a command line tool",
	Run: func(cmd *cobra.Command, args []string) {
		err := cmd.Help()
		if err != nil {
			return
		}
	},
}

func init() {
	rootCmd.AddCommand(version.VersionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		panic(err)
	}
}
