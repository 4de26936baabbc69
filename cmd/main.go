package main

import "github.com/maxaizer/sam-finder/internal/cli"

func main() {
	cli.Execute()
}
