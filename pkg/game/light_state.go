package game

import (
	"fmt"
	"sort"
	"strings"
)

// TrackingKind 追踪目标的类型
type TrackingKind int

const (
	// TrackNone 不追踪，光束自旋、手电筒跟随朝向
	TrackNone TrackingKind = iota
	// TrackPlayer 追踪玩家
	TrackPlayer
	// TrackEntity 追踪指定ID的地图事件
	TrackEntity
)

var trackingKindNames = map[TrackingKind]string{
	TrackNone:   "none",
	TrackPlayer: "player",
	TrackEntity: "event",
}

// String 返回追踪类型名称
func (k TrackingKind) String() string {
	if name, ok := trackingKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// MarshalYAML 以名称形式持久化追踪类型
func (k TrackingKind) MarshalYAML() (interface{}, error) {
	return k.String(), nil
}

// UnmarshalYAML 从名称解析追踪类型
func (k *TrackingKind) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var name string
	if err := unmarshal(&name); err != nil {
		return err
	}
	for kind, n := range trackingKindNames {
		if n == strings.ToLower(name) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown tracking kind %q", name)
}

// TrackingTarget 光束/手电筒的追踪目标
type TrackingTarget struct {
	Kind     TrackingKind `yaml:"kind"`
	EntityID int          `yaml:"eventId,omitempty"` // 仅 Kind == TrackEntity 时有效
}

// IsNone 是否不追踪任何目标
func (t TrackingTarget) IsNone() bool {
	return t.Kind == TrackNone
}

// LightState 全局灯光状态
//
// 按灯光ID记录开关和追踪目标。共享同一ID的所有灯光一起开关、一起追踪。
// 不在 On 中的ID视为开启。
type LightState struct {
	On                 map[int]bool           `yaml:"on"`
	BeamTracking       map[int]TrackingTarget `yaml:"beamTracking"`
	FlashlightTracking map[int]TrackingTarget `yaml:"flashlightTracking"`
}

// NewLightState 创建空的灯光状态（全部开启，无追踪）
func NewLightState() *LightState {
	ls := &LightState{}
	ls.ensureMaps()
	return ls
}

func (ls *LightState) ensureMaps() {
	if ls.On == nil {
		ls.On = make(map[int]bool)
	}
	if ls.BeamTracking == nil {
		ls.BeamTracking = make(map[int]TrackingTarget)
	}
	if ls.FlashlightTracking == nil {
		ls.FlashlightTracking = make(map[int]TrackingTarget)
	}
}

// IsOn 查询灯光ID是否开启
func (ls *LightState) IsOn(id int) bool {
	on, ok := ls.On[id]
	return !ok || on
}

// SetOn 设置灯光ID的开关
func (ls *LightState) SetOn(id int, on bool) {
	ls.ensureMaps()
	ls.On[id] = on
}

// BeamTarget 返回光束ID的追踪目标
func (ls *LightState) BeamTarget(id int) TrackingTarget {
	return ls.BeamTracking[id]
}

// FlashlightTarget 返回手电筒ID的追踪目标
func (ls *LightState) FlashlightTarget(id int) TrackingTarget {
	return ls.FlashlightTracking[id]
}

// SetBeamTarget 设置光束追踪目标，TrackNone 等同于清除
func (ls *LightState) SetBeamTarget(id int, target TrackingTarget) {
	ls.ensureMaps()
	setTarget(ls.BeamTracking, id, target)
}

// SetFlashlightTarget 设置手电筒追踪目标，TrackNone 等同于清除
func (ls *LightState) SetFlashlightTarget(id int, target TrackingTarget) {
	ls.ensureMaps()
	setTarget(ls.FlashlightTracking, id, target)
}

func setTarget(m map[int]TrackingTarget, id int, target TrackingTarget) {
	if target.IsNone() {
		delete(m, id)
		return
	}
	if target.Kind == TrackPlayer {
		target.EntityID = 0
	}
	m[id] = target
}

// OffIDs 返回所有被关闭的灯光ID（升序），用于调试显示
func (ls *LightState) OffIDs() []int {
	ids := make([]int, 0)
	for id, on := range ls.On {
		if !on {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)
	return ids
}

// Reset 清空所有开关和追踪状态
func (ls *LightState) Reset() {
	ls.On = nil
	ls.BeamTracking = nil
	ls.FlashlightTracking = nil
	ls.ensureMaps()
}
