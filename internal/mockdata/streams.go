package mockdata

// Stream describes one live series shown on the deployments page.
type Stream struct {
	// Name is the URL slug.
	Name  string  `json:"name"`
	Title string  `json:"title"`
	Unit  string  `json:"unit"`
	Color string  `json:"color"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	// Fixed streams are drawn as monitors against Min..Max; the others scale
	// to the samples in their window.
	Fixed bool `json:"fixed"`
}

// Streams lists the live series. Values are drawn uniformly from Min..Max.
func Streams() []Stream {
	return []Stream{
		{Name: "cpu", Title: "System CPU Usage", Unit: "%", Color: Red, Min: 0, Max: 100, Fixed: true},
		{Name: "memory", Title: "System Memory", Unit: "%", Color: Cyan, Min: 0, Max: 100, Fixed: true},
		{Name: "network", Title: "Network Response Time", Unit: "ms", Color: Violet, Min: 0, Max: 200, Fixed: true},
		{Name: "power", Title: "Total Power Usage", Unit: "W", Color: Amber, Min: 0, Max: 100, Fixed: true},
		{Name: "throughput", Title: "Inference Throughput", Unit: "req/s", Color: Green, Min: 50, Max: 150},
	}
}
