// verify_terrain 输出若干种子下的地形与平台统计
//
// 用法:
//
//	go run ./cmd/verify_terrain -seeds 5
//	go run ./cmd/verify_terrain -config my.yaml -seed 42 -platforms
package main

import (
	"flag"
	"fmt"
	"math"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gonewx/ascent/pkg/config"
	"github.com/gonewx/ascent/pkg/rng"
	"github.com/gonewx/ascent/pkg/terrain"
)

var (
	configPath    = flag.String("config", "data/ascent.yaml", "场景配置文件")
	seed          = flag.Int64("seed", 1, "第一个随机种子")
	seeds         = flag.Int("seeds", 3, "连续统计的种子数量")
	showPlatforms = flag.Bool("platforms", false, "逐个打印平台位置")
)

func main() {
	flag.Parse()

	cfg, err := config.LoadAscentConfig(*configPath)
	if err != nil {
		fmt.Printf("⚠️  %v，使用内置配置\n", err)
		cfg = config.DefaultAscentConfig()
	}

	failed := false
	for s := *seed; s < *seed+int64(*seeds); s++ {
		if !report(cfg, s) {
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}

// report 打印一个种子的统计，返回是否通过检查
func report(cfg *config.AscentConfig, s int64) bool {
	src := rng.NewPCG(s)
	m := terrain.GenerateMountain(cfg.Mountain, cfg.Palette, src)
	platforms := terrain.LayoutPlatforms(cfg.Mountain, cfg.Platform, src)
	minY, maxY := m.HeightRange()

	snowy := 0
	for _, c := range m.Colors {
		if c.Sub(cfg.Palette.MountainSnow.Vec()).Len() < c.Sub(cfg.Palette.MountainGrass.Vec()).Len() {
			snowy++
		}
	}

	fmt.Printf("── seed %d ──\n", s)
	fmt.Printf("  山体: %d 个三角形, y ∈ [%.2f, %.2f], 偏雪顶点 %d/%d\n",
		m.TriangleCount(), minY, maxY, snowy, len(m.Colors))
	fmt.Printf("  平台: %d 个 (期望 %d)\n", len(platforms), cfg.TotalPlatforms()+1)

	ok := len(platforms) == cfg.TotalPlatforms()+1
	if len(platforms) == 0 {
		fmt.Printf("  ❌ 没有平台\n")
		return false
	}

	positions := terrain.Positions(platforms)
	minGap, maxGap, sum := math.Inf(1), 0.0, 0.0
	for i := 1; i < len(positions); i++ {
		gap := positions[i].Sub(positions[i-1]).Len()
		minGap, maxGap, sum = math.Min(minGap, gap), math.Max(maxGap, gap), sum+gap
	}
	if len(platforms) > 1 {
		fmt.Printf("  间距: min %.2f max %.2f avg %.2f\n", minGap, maxGap, sum/float64(len(platforms)-1))
	}

	for i := 1; i < len(positions); i++ {
		if positions[i].Y() < positions[i-1].Y()-2*cfg.Platform.HeightJitter-1e-9 {
			fmt.Printf("  ❌ 平台 %d 低于平台 %d 超过抖动范围\n", i, i-1)
			ok = false
		}
	}

	if flagPos, has := terrain.FlagPosition(platforms, cfg.Platform, cfg.Scenery.FlagOffset); has {
		fmt.Printf("  旗帜: (%.2f, %.2f, %.2f)\n", flagPos.X(), flagPos.Y(), flagPos.Z())
	}

	if *showPlatforms {
		for i, p := range platforms {
			fmt.Printf("  %2d (%6.2f, %6.2f, %6.2f) yaw=%5.1f°\n",
				i, p.Position.X(), p.Position.Y(), p.Position.Z(), mgl64.RadToDeg(p.Yaw))
		}
	}

	if ok {
		fmt.Printf("  ✅ 通过\n")
	}
	return ok
}
