package cmd

import (
	"fmt"
	"strings"

	"github.com/achilleasa/meshcut/asset/writer"
	"github.com/achilleasa/meshcut/shape"
	"github.com/urfave/cli"
)

// Tessellate a solid and optionally save the compiled index.
func TessellateShape(ctx *cli.Context) error {
	setupLogging(ctx)

	if ctx.String("shape") == "" {
		return fmt.Errorf("missing --shape argument; supported solids: %s", strings.Join(shape.Kinds(), ", "))
	}

	m, err := loadMesh(ctx)
	if err != nil {
		return err
	}

	logger.Noticef("mesh information:\n%s", m.Stats())

	if out := ctx.String("out"); out != "" {
		return writer.WriteIndex(ctx.String("shape"), m, out)
	}
	return nil
}
