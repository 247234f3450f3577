package assets

import (
	_ "embed"

	cfg "github.com/automoto/proxyfeedback/config"
)

//go:embed maps/controller.yaml
var controllerMap []byte

// LoadControllerMap returns the affordance map at path, or the embedded demo
// map when path is empty.
func LoadControllerMap(path string) (*cfg.AffordanceMap, error) {
	if path != "" {
		return cfg.LoadAffordanceMap(path)
	}
	return cfg.ParseAffordanceMap(controllerMap)
}
