package game

import (
	"fmt"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// loadYAMLProp 从 gdata 读取一个 YAML 属性到 out
//
// 返回：
//   - bool: 属性是否存在（nil manager 视为不存在）
//   - error: 读取或反序列化失败
func loadYAMLProp(m *gdata.Manager, object, prop string, out interface{}) (bool, error) {
	if m == nil || !m.ObjectPropExists(object, prop) {
		return false, nil
	}

	data, err := m.LoadObjectProp(object, prop)
	if err != nil {
		return true, fmt.Errorf("failed to load %s/%s: %w", object, prop, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return true, fmt.Errorf("failed to unmarshal %s/%s: %w", object, prop, err)
	}
	return true, nil
}

// saveYAMLProp 将 in 序列化为 YAML 写入 gdata，nil manager 时不做任何事
func saveYAMLProp(m *gdata.Manager, object, prop string, in interface{}) error {
	if m == nil {
		return nil
	}

	data, err := yaml.Marshal(in)
	if err != nil {
		return fmt.Errorf("failed to marshal %s/%s: %w", object, prop, err)
	}
	if err := m.SaveObjectProp(object, prop, data); err != nil {
		return fmt.Errorf("failed to save %s/%s: %w", object, prop, err)
	}
	return nil
}
