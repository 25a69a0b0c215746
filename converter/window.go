package converter

// Window is a half-open intake range [Min, Max) in minutes.
type Window struct {
	Min int
	Max int
}

var (
	// RailWindow keeps rail predictions from now up to the hour.
	RailWindow = Window{Min: 0, Max: 60}
	// BusWindow tolerates two minutes of clock skew and looks two hours ahead.
	BusWindow = Window{Min: -2, Max: 120}
)

// Contains reports whether minutes falls inside the window.
func (w Window) Contains(minutes int) bool {
	return minutes >= w.Min && minutes < w.Max
}

func (w Window) orDefault(def Window) Window {
	if w.Min == 0 && w.Max == 0 {
		return def
	}
	return w
}
