package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Project struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	URL         string `yaml:"url"`
}

type Job struct {
	Title        string   `yaml:"title"`
	Company      string   `yaml:"company"`
	StartDate    string   `yaml:"start_date"`
	EndDate      string   `yaml:"end_date"`
	LogoPath     string   `yaml:"logo_path"`
	BulletPoints []string `yaml:"bullet_points"`
}

type Education struct {
	Degree       string   `yaml:"degree"`
	Institution  string   `yaml:"institution"`
	StartDate    string   `yaml:"start_date"`
	EndDate      string   `yaml:"end_date"`
	LogoPath     string   `yaml:"logo_path"`
	BulletPoints []string `yaml:"bullet_points"`
}

// Content is everything the resume page shows. It has no behavior of its own.
type Content struct {
	Name      string      `yaml:"name"`
	Headline  string      `yaml:"headline"`
	AboutMe   string      `yaml:"about_me"`
	Projects  []Project   `yaml:"projects"`
	Jobs      []Job       `yaml:"jobs"`
	Education []Education `yaml:"education"`
}

var defaultContent = Content{
	Name:     "Zach Kordas-Potter",
	Headline: "Software developer",
	AboutMe: `I like building software that is useful and a little bit fun, and I am always curious
	about how things work underneath. Most projects start as a small idea and turn into a reason
	to learn a new language, tool or problem space.`,
	Projects: []Project{
		{
			Name:        "Terminal mail client",
			Description: "An email client for the terminal written in Go with fuzzy finding, built on Bubble Tea and go-imap.",
		},
		{
			Name:        "Terminal music player",
			Description: "A command-line YouTube Music player in Go that drives yt-dlp and mpv behind a TUI.",
		},
		{
			Name:        "Game recommender",
			Description: "A web app recommending games from TF-IDF vectors and cosine similarity, with review and rating filters.",
		},
		{
			Name:        "This site",
			Description: "A Go and Gin portfolio using HTMX for partial updates and a light/dark theme that follows your OS.",
		},
	},
	Jobs: []Job{
		{
			Title:     "Presentation Expert",
			Company:   "Target",
			StartDate: "Aug 2023",
			EndDate:   "Present",
			LogoPath:  "images/TargetLogo.jpg",
			BulletPoints: []string{
				"Ran more than 300 merchandising transitions on tight timelines by organizing team workflows",
				"Streamlined backroom inventory and communication between the floor and logistics teams",
			},
		},
		{
			Title:     "Manager",
			Company:   "Jasons Catered Events",
			StartDate: "Aug 2016",
			EndDate:   "Present",
			LogoPath:  "images/jasonsCateringLogo.png",
			BulletPoints: []string{
				"Coordinated custom menus and dietary requirements for client events",
				"Supported event AV equipment and digital order tracking",
			},
		},
	},
	Education: []Education{
		{
			Degree:      "Bachelor of Computer Science",
			Institution: "Western Governors University",
			StartDate:   "Sept 2019",
			EndDate:     "May 2023",
			LogoPath:    "images/WGU-logo.png",
			BulletPoints: []string{
				"Relevant coursework: data structures, algorithms, web development",
			},
		},
	},
}

// LoadContent returns the built-in content, or the YAML file at path when
// one is configured.
func LoadContent(path string) (*Content, error) {
	content := defaultContent
	if path == "" {
		return &content, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read content: %w", err)
	}
	if err := yaml.Unmarshal(data, &content); err != nil {
		return nil, fmt.Errorf("parse content %s: %w", path, err)
	}
	return &content, nil
}
