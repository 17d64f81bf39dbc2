package models

type Region struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

type Stats struct {
	Width         int     `json:"width"`
	Height        int     `json:"height"`
	EdgePixels    int     `json:"edgePixels"`
	DilatedPixels int     `json:"dilatedPixels"`
	Coverage      float64 `json:"coverage"`
	Zoom          Region  `json:"zoom"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
