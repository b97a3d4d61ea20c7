package main

import "github.com/revolutionchain/ethfmt/cli"

func main() {
	cli.Run()
}
