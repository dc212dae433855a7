// Package main implements the controleopcoes CLI tool.
// It provisions the application's DynamoDB table and prints the deployment checklist.
package main

import "github.com/controleopcoes/controleopcoes/cmd/cli/cmd"

func main() {
	cmd.Execute()
}
