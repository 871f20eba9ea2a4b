// Package mock provides moq generated test doubles of the external services.
package mock

//go:generate go tool moq -out strava.go -pkg mock ../service/strava Service:StravaServiceMock
//go:generate go tool moq -out loops.go -pkg mock ../service/loops Service:LoopsServiceMock
//go:generate go tool moq -out slack.go -pkg mock ../service/slack Service:SlackServiceMock
//go:generate go tool moq -out archive.go -pkg mock ../service/archive Service:ArchiveServiceMock
