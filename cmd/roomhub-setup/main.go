package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const defaultServerURL = "http://localhost:3536"

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	inputStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86"))

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)
)

type step int

const (
	stepEnteringUsername step = iota
	stepEnteringPassword
	stepAuthenticating
	stepEnteringTopic
	stepEnteringRoomName
	stepEnteringDescription
	stepCreatingRoom
	stepComplete
)

type model struct {
	step         step
	client       *http.Client
	serverURL    string
	username     string
	password     string
	topic        string
	roomName     string
	description  string
	currentInput string
	message      string
	quitting     bool
}

type authSuccessMsg struct{ registered bool }
type roomCreatedMsg struct{ name string }
type errMsg struct{ err error }

func (e errMsg) Error() string { return e.err.Error() }

func initialModel() model {
	jar, _ := cookiejar.New(nil)
	url := os.Getenv("ROOMHUB_URL")
	if url == "" {
		url = defaultServerURL
	}
	return model{
		step:      stepEnteringUsername,
		client:    &http.Client{Timeout: 10 * time.Second, Jar: jar},
		serverURL: strings.TrimRight(url, "/"),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func postForm(client *http.Client, url string, fields map[string]string) (*http.Response, error) {
	payload, _ := json.Marshal(fields)
	req, err := http.NewRequest("POST", url, bytes.NewBuffer(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return client.Do(req)
}

// authenticate tries to log in and falls back to registering a fresh account.
func authenticate(client *http.Client, serverURL, username, password string) tea.Cmd {
	return func() tea.Msg {
		creds := map[string]string{"username": username, "password": password}

		resp, err := postForm(client, serverURL+"/login", creds)
		if err != nil {
			return errMsg{fmt.Errorf("cannot reach server: %w", err)}
		}
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		if resp.StatusCode == http.StatusOK {
			return authSuccessMsg{registered: false}
		}

		resp, err = postForm(client, serverURL+"/register", creds)
		if err != nil {
			return errMsg{fmt.Errorf("cannot reach server: %w", err)}
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusCreated {
			body, _ := io.ReadAll(resp.Body)
			return errMsg{fmt.Errorf("login and registration both failed: %s", strings.TrimSpace(string(body)))}
		}
		return authSuccessMsg{registered: true}
	}
}

func createRoom(client *http.Client, serverURL, name, topic, description string) tea.Cmd {
	return func() tea.Msg {
		resp, err := postForm(client, serverURL+"/room/new", map[string]string{
			"name":        name,
			"topic":       topic,
			"description": description,
		})
		if err != nil {
			return errMsg{fmt.Errorf("cannot reach server: %w", err)}
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusCreated {
			body, _ := io.ReadAll(resp.Body)
			return errMsg{fmt.Errorf("room creation failed: %s", strings.TrimSpace(string(body)))}
		}
		return roomCreatedMsg{name: name}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case "enter":
			switch m.step {
			case stepEnteringUsername:
				if m.currentInput == "" {
					return m, nil
				}
				m.username = m.currentInput
				m.currentInput = ""
				m.step = stepEnteringPassword

			case stepEnteringPassword:
				if m.currentInput == "" {
					return m, nil
				}
				m.password = m.currentInput
				m.currentInput = ""
				m.step = stepAuthenticating
				m.message = "Signing in..."
				return m, authenticate(m.client, m.serverURL, m.username, m.password)

			case stepEnteringTopic:
				if m.currentInput == "" {
					return m, nil
				}
				m.topic = m.currentInput
				m.currentInput = ""
				m.step = stepEnteringRoomName

			case stepEnteringRoomName:
				if m.currentInput == "" {
					return m, nil
				}
				m.roomName = m.currentInput
				m.currentInput = ""
				m.step = stepEnteringDescription

			case stepEnteringDescription:
				m.description = m.currentInput
				m.currentInput = ""
				m.step = stepCreatingRoom
				m.message = "Creating room..."
				return m, createRoom(m.client, m.serverURL, m.roomName, m.topic, m.description)

			case stepComplete:
				m.quitting = true
				return m, tea.Quit
			}

		case "backspace":
			if len(m.currentInput) > 0 {
				m.currentInput = m.currentInput[:len(m.currentInput)-1]
			}

		default:
			if m.step == stepEnteringUsername || m.step == stepEnteringPassword ||
				m.step == stepEnteringTopic || m.step == stepEnteringRoomName ||
				m.step == stepEnteringDescription {
				if len(msg.String()) == 1 {
					m.currentInput += msg.String()
				}
			}
		}

	case authSuccessMsg:
		m.step = stepEnteringTopic
		if msg.registered {
			m.message = successStyle.Render("✓ Registered " + m.username + "!")
		} else {
			m.message = successStyle.Render("✓ Logged in as " + m.username + "!")
		}

	case roomCreatedMsg:
		m.step = stepComplete
		m.message = successStyle.Render("✓ Room \"" + msg.name + "\" created!")

	case errMsg:
		m.message = errorStyle.Render("✗ " + msg.err.Error())
		if m.step == stepAuthenticating {
			m.step = stepEnteringUsername
		} else {
			m.step = stepEnteringTopic
		}
	}

	return m, nil
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var s strings.Builder

	s.WriteString(titleStyle.Render("🏠 Roomhub Setup Tool\n\n"))
	if m.message != "" {
		s.WriteString(m.message + "\n\n")
	}

	switch m.step {
	case stepEnteringUsername:
		s.WriteString(promptStyle.Render("Enter your username:\n"))
		s.WriteString(inputStyle.Render("> " + m.currentInput))
		s.WriteString("\n\nPress Enter\n")

	case stepEnteringPassword:
		s.WriteString(promptStyle.Render("Enter your password (min 8 characters):\n"))
		s.WriteString(inputStyle.Render("> " + strings.Repeat("•", len(m.currentInput))))
		s.WriteString("\n\nPress Enter\n")

	case stepAuthenticating, stepCreatingRoom:
		// message already shown above

	case stepEnteringTopic:
		s.WriteString(promptStyle.Render("Topic for your first room:\n"))
		s.WriteString(inputStyle.Render("> " + m.currentInput))
		s.WriteString("\n\nPress Enter\n")

	case stepEnteringRoomName:
		s.WriteString(promptStyle.Render("Room name:\n"))
		s.WriteString(inputStyle.Render("> " + m.currentInput))
		s.WriteString("\n\nPress Enter\n")

	case stepEnteringDescription:
		s.WriteString(promptStyle.Render("Description (optional):\n"))
		s.WriteString(inputStyle.Render("> " + m.currentInput))
		s.WriteString("\n\nPress Enter\n")

	case stepComplete:
		s.WriteString("\nPress Enter to exit\n")
	}

	return s.String()
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
}
