package main

import "srtm-backend/internal/cli"

func main() {
	cli.Execute()
}
