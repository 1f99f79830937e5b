package main

import "github.com/Tiliavir/productivity-log/cmd"

func main() {
	cmd.Execute()
}
