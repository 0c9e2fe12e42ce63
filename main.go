package main

import "github.com/mglanz/csvreport/cmd"

func main() {
	cmd.Execute()
}
