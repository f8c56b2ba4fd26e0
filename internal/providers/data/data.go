// Package data holds the embedded sample feeds the stub sources serve.
// Real deployments swap the stubs for HTTP-backed sources; the payload
// shapes stay the same.
package data

import _ "embed"

//go:embed inspiration.json
var InspirationData []byte

//go:embed trending.json
var TrendingData []byte

//go:embed experiences.json
var ExperienceData []byte

//go:embed weather.json
var WeatherData []byte
