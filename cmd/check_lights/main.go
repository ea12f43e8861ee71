package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/gonewx/ravelight/internal/lighting"
	"github.com/gonewx/ravelight/pkg/config"
	"github.com/gonewx/ravelight/pkg/embedded"
)

var (
	root    = flag.String("root", ".", "资源根目录（包含 data/）")
	verbose = flag.Bool("verbose", false, "打印每个灯光的规范化注释")
	strict  = flag.Bool("strict", false, "存在警告时以非零状态退出")
)

// checker 汇总一次检查的警告
type checker struct {
	registry *lighting.Registry
	warnings int
}

func (c *checker) warn(format string, args ...interface{}) {
	c.warnings++
	fmt.Printf("  WARN  "+format+"\n", args...)
}

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "用法: check_lights [flags] [map-id ...]\n\n")
		fmt.Fprintf(os.Stderr, "解析地图中每个事件页的灯光注释，打印规范化结果并报告问题。\n")
		fmt.Fprintf(os.Stderr, "不指定地图时检查 data/maps 下的所有地图。\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	embedded.Init(os.DirFS(*root))

	cfg, err := config.LoadLightingConfig(config.LightingConfigPath)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	c := &checker{registry: cfg.BuildRegistry()}
	fmt.Printf("Custom light types: %s\n", strings.Join(c.registry.Names(), ", "))

	ids := flag.Args()
	if len(ids) == 0 {
		if ids, err = config.ListLightMaps(); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	}

	for _, id := range ids {
		m, err := config.LoadLightMap(config.LightMapPath(id))
		if err != nil {
			fmt.Printf("\n[%s]\n", id)
			c.warn("%v", err)
			continue
		}
		c.checkMap(m)
	}

	fmt.Printf("\n%d map(s) checked, %d warning(s)\n", len(ids), c.warnings)
	if *strict && c.warnings > 0 {
		os.Exit(1)
	}
}

// checkMap 检查一张地图的所有事件页和按键命令
func (c *checker) checkMap(m *config.LightMapConfig) {
	fmt.Printf("\n[%s] %s (%dx%d, %d events)\n", m.ID, m.Name, m.Width, m.Height, len(m.Events))

	lightIDs := make(map[int]bool)
	for _, ev := range m.Events {
		for page, p := range ev.Pages {
			if strings.TrimSpace(p.Note) == "" {
				continue
			}
			descriptors := lighting.Parse(p.Note, c.registry)
			fmt.Printf("  event %d %q page %d: %d light(s)\n", ev.ID, ev.Name, page, len(descriptors))
			if len(descriptors) == 0 {
				c.warn("event %d page %d: %q produces no lights", ev.ID, page, p.Note)
			}
			for _, d := range descriptors {
				lightIDs[d.ID] = true
				c.checkDescriptor(ev.ID, d)
			}
		}
	}

	for _, cmd := range m.Commands {
		fields := strings.Fields(cmd.Command)
		if len(fields) < 2 {
			continue
		}
		id, err := strconv.Atoi(fields[1])
		if err != nil {
			c.warn("key %q: %q has a non-numeric light id", cmd.Key, cmd.Command)
			continue
		}
		if !lightIDs[id] {
			c.warn("key %q: %q targets light id %d, which no event uses", cmd.Key, cmd.Command, id)
		}
	}
}

// checkDescriptor 打印规范化注释，并确认它能被重新解析为同一个灯光
func (c *checker) checkDescriptor(eventID int, d lighting.Descriptor) {
	annotation := d.Annotation()
	if *verbose {
		fmt.Printf("    %s\n", annotation)
	}

	reparsed := lighting.Parse(annotation, nil)
	if len(reparsed) != 1 || reparsed[0].Annotation() != annotation {
		c.warn("event %d: %q does not round-trip", eventID, annotation)
	}
	if d.Type.IsTracking() && d.ID == lighting.DefaultID {
		c.warn("event %d: %s light uses the default id %d, tracking commands will be shared", eventID, d.Type, d.ID)
	}
}
