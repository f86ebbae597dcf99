package room

type Track struct {
	Id        string  `json:"id"`
	Title     string  `json:"title"`
	Thumbnail string  `json:"thumbnail"`
	Duration  float64 `json:"duration,omitempty"`
	AddedBy   string  `json:"addedBy"`
}

type User struct {
	Name   string `json:"name"`
	IsHost bool   `json:"isHost"`
}

type Theme struct {
	Id         string `json:"id" validate:"required"`
	Name       string `json:"name" validate:"required"`
	Background string `json:"background" validate:"required"`
	Text       string `json:"text" validate:"required"`
	Accent     string `json:"accent" validate:"required"`
	Secondary  string `json:"secondary" validate:"required"`
}

type Player struct {
	IsPlaying   bool    `json:"isPlaying"`
	CurrentTime float64 `json:"currentTime"`
	UpdatedAt   int64   `json:"updatedAt"`
}

// RoomState is the full snapshot sent to a joining member.
type RoomState struct {
	CurrentSong    *Track  `json:"currentSong"`
	Playlist       []Track `json:"playlist"`
	IsPlaying      bool    `json:"isPlaying"`
	CurrentTime    float64 `json:"currentTime"`
	Theme          Theme   `json:"theme"`
	IsDynamicTheme bool    `json:"isDynamicTheme"`
}

// DynamicThemeId is the reserved theme id that turns on dynamic theming.
const DynamicThemeId = "dynamic"

// DefaultTheme is assigned to every freshly created room.
var DefaultTheme = Theme{
	Id:         "midnight",
	Name:       "Midnight",
	Background: "#0f0f1a",
	Text:       "#f5f5f7",
	Accent:     "#e94560",
	Secondary:  "#16213e",
}
