package registry

import "example.com/activities/internal/domain"

// seedActivities returns the fixed Mergington High dataset loaded at process
// start. Only participant rosters mutate afterwards; the activity set never
// changes at runtime.
func seedActivities() []domain.Activity {
	return []domain.Activity{
		{
			Name:            "Chess Club",
			Description:     "Learn strategies and compete in chess tournaments",
			Schedule:        "Fridays, 3:30 PM - 5:00 PM",
			MaxParticipants: 12,
			Participants:    []string{"michael@mergington.edu", "daniel@mergington.edu"},
		},
		{
			Name:            "Programming Class",
			Description:     "Learn programming fundamentals and build software projects",
			Schedule:        "Tuesdays and Thursdays, 3:30 PM - 4:30 PM",
			MaxParticipants: 20,
			Participants:    []string{"emma@mergington.edu", "sophia@mergington.edu"},
		},
		{
			Name:            "Gym Class",
			Description:     "Physical education and sports activities",
			Schedule:        "Mondays, Wednesdays, Fridays, 2:00 PM - 3:00 PM",
			MaxParticipants: 30,
			Participants:    []string{"john@mergington.edu", "olivia@mergington.edu"},
		},
		{
			Name:            "Basketball Team",
			Description:     "Practice and compete in interscholastic basketball games",
			Schedule:        "Wednesdays, 4:00 PM - 5:30 PM",
			MaxParticipants: 15,
		},
		{
			Name:            "Swimming Club",
			Description:     "Swim laps and train with the school team",
			Schedule:        "Tuesdays, 3:30 PM - 5:00 PM",
			MaxParticipants: 20,
			Participants:    []string{"lucas@mergington.edu"},
		},
		{
			Name:            "Art Studio",
			Description:     "Painting, drawing and mixed-media projects",
			Schedule:        "Thursdays, 3:30 PM - 5:00 PM",
			MaxParticipants: 16,
			Participants:    []string{"amelia@mergington.edu", "harper@mergington.edu"},
		},
		{
			Name:            "Drama Club",
			Description:     "Rehearse and perform in school theater productions",
			Schedule:        "Mondays and Wednesdays, 3:30 PM - 5:00 PM",
			MaxParticipants: 25,
			Participants:    []string{"ella@mergington.edu"},
		},
		{
			Name:            "Science Club",
			Description:     "Hands-on experiments and science fair preparation",
			Schedule:        "Wednesdays, 3:30 PM - 4:30 PM",
			MaxParticipants: 18,
			Participants:    []string{"noah@mergington.edu"},
		},
		{
			Name:            "Debate Team",
			Description:     "Research topics and compete in debate tournaments",
			Schedule:        "Fridays, 4:00 PM - 5:30 PM",
			MaxParticipants: 14,
			Participants:    []string{"ava@mergington.edu"},
		},
	}
}
