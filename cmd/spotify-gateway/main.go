package main

import "spotify-gateway/internal/cli"

func main() {
	cli.Execute()
}
