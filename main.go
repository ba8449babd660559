package main

import "PRESENSI/cmd"

func main() {
	cmd.Execute()
}
