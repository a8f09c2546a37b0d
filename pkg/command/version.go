package command

import "fmt"

// Version is set by the linker at release build time; it stays "dev" for
// ordinary local builds.
var Version = "dev"

type VersionCmd struct{}

func (*VersionCmd) Run() error {
	fmt.Println("strand", Version)
	return nil
}
