package chart

// Config is a Chart.js line chart definition.
type Config struct {
	Type    string  `json:"type"`
	Data    Data    `json:"data"`
	Options Options `json:"options"`
}

type Data struct {
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
}

type Dataset struct {
	Label                string    `json:"label"`
	Data                 []float64 `json:"data"`
	BorderColor          string    `json:"borderColor"`
	BackgroundColor      string    `json:"backgroundColor"`
	BorderWidth          int       `json:"borderWidth"`
	PointBackgroundColor string    `json:"pointBackgroundColor"`
	PointBorderColor     string    `json:"pointBorderColor"`
	PointRadius          int       `json:"pointRadius"`
	Tension              float64   `json:"tension"`
	Fill                 bool      `json:"fill"`
}

type Options struct {
	Responsive          bool    `json:"responsive"`
	MaintainAspectRatio bool    `json:"maintainAspectRatio"`
	Plugins             Plugins `json:"plugins"`
	Scales              Scales  `json:"scales"`
}

type Plugins struct {
	Legend  Legend  `json:"legend"`
	Tooltip Tooltip `json:"tooltip"`
}

type Legend struct {
	Display bool `json:"display"`
}

type Tooltip struct {
	Mode      string `json:"mode"`
	Intersect bool   `json:"intersect"`
}

type Scales struct {
	Y Axis `json:"y"`
	X Axis `json:"x"`
}

type Axis struct {
	Grid  Grid  `json:"grid"`
	Ticks Ticks `json:"ticks"`
}

type Grid struct {
	Display *bool  `json:"display,omitempty"`
	Color   string `json:"color,omitempty"`
}

type Ticks struct {
	Color string `json:"color"`
}

// Palette.
const (
	SeriesLabel     = "BTC Price (USD)"
	LineColor       = "#3b82f6"
	FillColor       = "rgba(59,130,246,0.1)"
	PointEdgeColor  = "white"
	GridColor       = "#334155"
	TickColor       = "#94a3b8"
	BackgroundColor = "#0f172a"
)

func newConfig(labels []string, prices []float64) Config {
	hidden := false
	return Config{
		Type: "line",
		Data: Data{
			Labels: labels,
			Datasets: []Dataset{{
				Label:                SeriesLabel,
				Data:                 prices,
				BorderColor:          LineColor,
				BackgroundColor:      FillColor,
				BorderWidth:          3,
				PointBackgroundColor: LineColor,
				PointBorderColor:     PointEdgeColor,
				PointRadius:          4,
				Tension:              0.2,
				Fill:                 true,
			}},
		},
		Options: Options{
			Responsive:          true,
			MaintainAspectRatio: true,
			Plugins: Plugins{
				Legend:  Legend{Display: false},
				Tooltip: Tooltip{Mode: "index", Intersect: false},
			},
			Scales: Scales{
				Y: Axis{Grid: Grid{Color: GridColor}, Ticks: Ticks{Color: TickColor}},
				X: Axis{Grid: Grid{Display: &hidden}, Ticks: Ticks{Color: TickColor}},
			},
		},
	}
}
