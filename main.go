package main

import "student-etl/cmd"

func main() {
	cmd.Execute()
}
