package main

import "github.com/nikogura/rhymer/cmd"

func main() {
	cmd.Execute()
}
