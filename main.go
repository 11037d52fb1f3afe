package main

import "github.com/sitekit/sitekit-cli/cmd"

func main() {
	cmd.Execute()
}
