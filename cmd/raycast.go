package cmd

import (
	"github.com/achilleasa/meshcut/types"
	"github.com/urfave/cli"
)

// Cast a ray against a mesh and report the nearest hit.
func RaycastMesh(ctx *cli.Context) error {
	setupLogging(ctx)

	origin, err := parseVec3(ctx.String("origin"))
	if err != nil {
		return err
	}
	dir, err := parseVec3(ctx.String("dir"))
	if err != nil {
		return err
	}

	m, err := loadMesh(ctx)
	if err != nil {
		return err
	}

	ray := types.NewRay(origin, dir)
	if maxDist := ctx.Float64("max-dist"); maxDist > 0 {
		ray.MaxDist = float32(maxDist)
	}

	if ctx.Bool("all") {
		hits := m.RayHits(ray)
		logger.Noticef("ray from %v along %v: %d hits", origin, ray.Dir, len(hits))
		for _, hit := range hits {
			logger.Noticef("  triangle %d at distance %.6f (point %v)", hit.Index, hit.Distance, ray.Point(hit.Distance))
		}
		return nil
	}

	hit, found := m.RayCast(ray)
	if !found {
		logger.Noticef("ray from %v along %v: no hit", origin, ray.Dir)
		return nil
	}
	logger.Noticef(
		"ray from %v along %v: hit triangle %d at distance %.6f (point %v)",
		origin, ray.Dir, hit.Index, hit.Distance, ray.Point(hit.Distance),
	)
	logger.Noticef("origin inside mesh: %t", m.Contains(origin))
	return nil
}
