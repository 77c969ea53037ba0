package main

import "bigskydata/mtcounties/cmd"

func main() {
	cmd.Execute()
}
