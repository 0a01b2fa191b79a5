package main

import "mpu-janitor/cmd"

func main() {
	cmd.Execute()
}
