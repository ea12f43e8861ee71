package game

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ErrUnknownLightCommand 未知的灯光命令
var ErrUnknownLightCommand = errors.New("unknown light command")

// 灯光命令名称，大小写不敏感
const (
	CmdTurnOnLight               = "TurnOnLight"
	CmdTurnOffLight              = "TurnOffLight"
	CmdSetBeamTargetPlayer       = "SetBeamTargetPlayer"
	CmdSetBeamTargetEvent        = "SetBeamTargetEvent"
	CmdClearBeamTarget           = "ClearBeamTarget"
	CmdSetFlashlightTargetPlayer = "SetFlashlightTargetPlayer"
	CmdSetFlashlightTargetEvent  = "SetFlashlightTargetEvent"
	CmdClearFlashlightTarget     = "ClearFlashlightTarget"
)

type lightCommand struct {
	argc int
	run  func(ls *LightState, args []int)
}

var lightCommands = map[string]lightCommand{
	strings.ToLower(CmdTurnOnLight):  {1, func(ls *LightState, a []int) { ls.SetOn(a[0], true) }},
	strings.ToLower(CmdTurnOffLight): {1, func(ls *LightState, a []int) { ls.SetOn(a[0], false) }},
	strings.ToLower(CmdSetBeamTargetPlayer): {1, func(ls *LightState, a []int) {
		ls.SetBeamTarget(a[0], TrackingTarget{Kind: TrackPlayer})
	}},
	strings.ToLower(CmdSetBeamTargetEvent): {2, func(ls *LightState, a []int) {
		ls.SetBeamTarget(a[0], TrackingTarget{Kind: TrackEntity, EntityID: a[1]})
	}},
	strings.ToLower(CmdClearBeamTarget): {1, func(ls *LightState, a []int) {
		ls.SetBeamTarget(a[0], TrackingTarget{})
	}},
	strings.ToLower(CmdSetFlashlightTargetPlayer): {1, func(ls *LightState, a []int) {
		ls.SetFlashlightTarget(a[0], TrackingTarget{Kind: TrackPlayer})
	}},
	strings.ToLower(CmdSetFlashlightTargetEvent): {2, func(ls *LightState, a []int) {
		ls.SetFlashlightTarget(a[0], TrackingTarget{Kind: TrackEntity, EntityID: a[1]})
	}},
	strings.ToLower(CmdClearFlashlightTarget): {1, func(ls *LightState, a []int) {
		ls.SetFlashlightTarget(a[0], TrackingTarget{})
	}},
}

// ExecuteLightCommand 执行一条灯光命令
//
// 参数：
//   - ls: 要修改的灯光状态
//   - name: 命令名（如 "TurnOffLight"，大小写不敏感）
//   - args: 命令参数，均为整数ID
//
// 返回：
//   - error: 未知命令或参数非法时返回错误，状态不会被修改
func ExecuteLightCommand(ls *LightState, name string, args []string) error {
	cmd, ok := lightCommands[strings.ToLower(name)]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownLightCommand, name)
	}
	if len(args) < cmd.argc {
		return fmt.Errorf("%s: expected %d argument(s), got %d", name, cmd.argc, len(args))
	}

	ids := make([]int, cmd.argc)
	for i := range ids {
		v, err := strconv.Atoi(args[i])
		if err != nil {
			return fmt.Errorf("%s: argument %d: %w", name, i+1, err)
		}
		if v < 1 {
			return fmt.Errorf("%s: argument %d must be a positive id, got %d", name, i+1, v)
		}
		ids[i] = v
	}

	cmd.run(ls, ids)
	return nil
}

// ExecuteLightCommandLine 解析并执行一行命令文本，如 "SetBeamTargetEvent 2 14"
func ExecuteLightCommandLine(ls *LightState, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return fmt.Errorf("empty light command")
	}
	return ExecuteLightCommand(ls, fields[0], fields[1:])
}

// LightCommandNames 返回所有支持的命令名（小写，已排序）
func LightCommandNames() []string {
	names := make([]string, 0, len(lightCommands))
	for name := range lightCommands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
