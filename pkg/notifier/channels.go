package notifier

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ProjectChannels routes a project number to the chat channel it notifies
type ProjectChannels map[int]string

// DefaultProjectChannels is used when no mapping is configured
func DefaultProjectChannels() ProjectChannels {
	return ProjectChannels{
		7: "program",
		4: "information",
	}
}

// Channel returns the channel of a project, and false for unmapped projects
func (p ProjectChannels) Channel(projectNumber int) (string, bool) {
	channel, ok := p[projectNumber]
	if !ok || channel == "" {
		return "", false
	}
	return channel, true
}

// String renders the mapping in the format ParseProjectChannels accepts
func (p ProjectChannels) String() string {
	numbers := make([]int, 0, len(p))
	for number := range p {
		numbers = append(numbers, number)
	}
	sort.Ints(numbers)

	pairs := make([]string, 0, len(numbers))
	for _, number := range numbers {
		pairs = append(pairs, fmt.Sprintf("%d=%s", number, p[number]))
	}
	return strings.Join(pairs, ",")
}

// ParseProjectChannels parses "7=program,4=information"
func ParseProjectChannels(mapping string) (ProjectChannels, error) {
	channels := ProjectChannels{}

	for _, pair := range strings.Split(mapping, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}

		parts := strings.SplitN(pair, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid project channel pair %q, expected <project number>=<channel>", pair)
		}

		number, err := strconv.Atoi(strings.TrimSpace(parts[0]))
		if err != nil || number <= 0 {
			return nil, fmt.Errorf("invalid project number in %q", pair)
		}
		channel := strings.TrimSpace(parts[1])
		if channel == "" {
			return nil, fmt.Errorf("missing channel for project %d", number)
		}

		channels[number] = channel
	}

	return channels, nil
}
