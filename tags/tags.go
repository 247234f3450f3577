package tags

import "github.com/yohamta/donburi"

var (
	Proxy      = donburi.NewTag().SetName("Proxy")
	Affordance = donburi.NewTag().SetName("Affordance")
)
