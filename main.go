package main

import (
	"ci-computer-dashboard/cli"
	"ci-computer-dashboard/config"
)

func main() {
	// Load .env file in development (ignores error if file doesn't exist)
	config.LoadDotEnv(".env")

	cli.Execute()
}
