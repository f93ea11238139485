package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
)

const defaultWeatherEndpoint = "https://api.open-meteo.com/v1/forecast"

type weatherArgs struct {
	Latitude  float64 `json:"latitude" jsonschema:"required,description=Latitude of the location in decimal degrees"`
	Longitude float64 `json:"longitude" jsonschema:"required,description=Longitude of the location in decimal degrees"`
}

// WeatherTool reports the current temperature at a coordinate pair
// using a public forecast endpoint.
type WeatherTool struct {
	Endpoint string
	Client   *http.Client
}

// Name returns the tool name.
func (t WeatherTool) Name() string {
	return "get_weather"
}

// Description returns the tool description for the model.
func (t WeatherTool) Description() string {
	return "Get the current temperature in degrees Celsius for the given coordinates"
}

// Schema returns the JSON schema for get_weather args.
func (t WeatherTool) Schema() map[string]any {
	return reflectSchema(weatherArgs{})
}

// Execute fetches the current temperature and returns it as a plain
// number string, exactly as the endpoint reported it.
func (t WeatherTool) Execute(ctx context.Context, arguments string) (string, error) {
	args, err := parseWeatherArgs(arguments)
	if err != nil {
		return "", err
	}

	if t.Client == nil {
		return "", errors.New("http client is required")
	}
	endpoint := strings.TrimSpace(t.Endpoint)
	if endpoint == "" {
		endpoint = defaultWeatherEndpoint
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("create weather request: %w", err)
	}
	q := req.URL.Query()
	q.Set("latitude", strconv.FormatFloat(args.Latitude, 'f', -1, 64))
	q.Set("longitude", strconv.FormatFloat(args.Longitude, 'f', -1, 64))
	q.Set("current", "temperature_2m")
	req.URL.RawQuery = q.Encode()
	req.Header.Set("Accept", "application/json")

	resp, err := t.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("execute weather request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read weather response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("weather request failed: %s", resp.Status)
	}

	var payload struct {
		Current struct {
			Temperature *float64 `json:"temperature_2m"`
		} `json:"current"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", fmt.Errorf("decode weather response: %w", err)
	}
	if payload.Current.Temperature == nil {
		return "", errors.New("weather response missing current.temperature_2m")
	}

	return strconv.FormatFloat(*payload.Current.Temperature, 'f', -1, 64), nil
}

func parseWeatherArgs(raw string) (weatherArgs, error) {
	var args weatherArgs
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&args); err != nil {
		return weatherArgs{}, fmt.Errorf("parse get_weather arguments: %w", err)
	}
	return args, nil
}
