package main

import "github.com/gvsurenderreddy-rakoshare/btext/cmd"

func main() {
	cmd.Execute()
}
