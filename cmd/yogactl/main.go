package main

import "github.com/anvayahealth/yogatherapy-backend/cmd/yogactl/cmd"

func main() {
	cmd.Execute()
}
