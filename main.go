package main

import (
	"github.com/mj1618/sysprefs-cli/cmd"
	_ "github.com/mj1618/sysprefs-cli/internal/platform/darwin"
)

func main() {
	cmd.Execute()
}
