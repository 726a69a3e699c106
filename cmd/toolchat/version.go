package main

import (
	"fmt"
	"os"

	// Packages
	version "github.com/mutablelogic/go-toolchat/pkg/version"
)

type VersionCmd struct{}

func (cmd *VersionCmd) Run(ctx *Globals) error {
	_, err := fmt.Fprintln(os.Stdout, version.Get(ctx.execName))
	return err
}
