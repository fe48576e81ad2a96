package main

import "github.com/joseluizmed/tempodeatestadonovo2/cmd"

func main() {
	cmd.Execute()
}
