package engine

import "battlebot/internal/battle"

// MaxWeatherTurns is how long a weather lasts once set.
const MaxWeatherTurns = 5

// WeatherState is the active weather and the turns it has been up.
type WeatherState struct {
	Kind  battle.Weather `json:"kind,omitempty"`
	Turns int            `json:"turns,omitempty"`
}

func (w WeatherState) Active() bool { return w.Kind != battle.NoWeather }

// Advance returns the weather after a move. turnDone marks the end of a full
// turn, which ages the weather by one; weather past its last turn clears.
// A move that sets weather restarts the count at one.
func (w WeatherState) Advance(set battle.Weather, turnDone bool) WeatherState {
	next := w
	if next.Active() && turnDone {
		if next.Turns < MaxWeatherTurns {
			next.Turns++
		} else {
			next = WeatherState{}
		}
	}
	if set != battle.NoWeather {
		next = WeatherState{Kind: set, Turns: 1}
	}
	return next
}
