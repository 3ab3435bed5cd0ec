package main

import (
	"fmt"
	"strings"

	"github.com/iWorld-y/marketing_agent/app/marketing_agent/pkg/engine"
	dm "github.com/iWorld-y/marketing_agent/app/marketing_agent/pkg/model"
)

// parseSegments 解析 name=characteristics 形式的受众参数
func parseSegments(raw []string) ([]dm.Segment, error) {
	if len(raw) == 0 || len(raw) > engine.MaxSegments {
		return nil, fmt.Errorf("%w: 1-%d segments are required", engine.ErrInvalidInput, engine.MaxSegments)
	}
	segs := make([]dm.Segment, 0, len(raw))
	for _, r := range raw {
		name, chars, _ := strings.Cut(r, "=")
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("%w: segment %q has no name", engine.ErrInvalidInput, r)
		}
		segs = append(segs, dm.Segment{Name: name, Characteristics: strings.TrimSpace(chars)})
	}
	return segs, nil
}
