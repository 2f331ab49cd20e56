package main

import "github.com/gaurav-prasanna/hwscrape/cmd"

func main() {
	cmd.Execute()
}
