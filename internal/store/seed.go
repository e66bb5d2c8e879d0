package store

import "time"

// Seed is the hand-authored demo snapshot every seeded store starts from.
// Row ids below 1000 are reserved for seed rows so generated ids never
// collide with them in practice.
func Seed() map[string][]Row {
	return map[string][]Row{
		"companies": {
			{
				"id":         int64(1),
				"company_id": "COMP-01J4QD8E2M0000000000A1B2C3",
				"name":       "Harbor & Pine",
				"domain":     "harborpine.com",
				"industry":   "Retail",
				"size":       "11-50",
				"created_at": seedTime(2026, 1, 12, 9),
			},
			{
				"id":         int64(2),
				"company_id": "COMP-01J4QD8E2M0000000000D4E5F6",
				"name":       "Northwind Labs",
				"domain":     "northwindlabs.io",
				"industry":   "SaaS",
				"size":       "51-200",
				"created_at": seedTime(2026, 1, 19, 14),
			},
		},
		"contacts": {
			{
				"id":               int64(1),
				"contact_id":       "CNT-01J4QD8E2M00000000001A2B3C",
				"organization_id":  "org_lumen",
				"company_id":       "COMP-01J4QD8E2M0000000000A1B2C3",
				"first_name":       "Maya",
				"last_name":        "Okafor",
				"email":            "maya@harborpine.com",
				"phone":            "+15555550101",
				"status":           "customer",
				"lead_score":       82,
				"quality":          "high",
				"engagement":       "active",
				"tags":             []string{"retainer", "priority"},
				"email_opt_in":     true,
				"sms_opt_in":       false,
				"marketing_opt_in": true,
				"created_at":       seedTime(2026, 1, 13, 10),
				"updated_at":       seedTime(2026, 2, 2, 16),
			},
			{
				"id":               int64(2),
				"contact_id":       "CNT-01J4QD8E2M00000000004D5E6F",
				"organization_id":  "org_lumen",
				"company_id":       "COMP-01J4QD8E2M0000000000D4E5F6",
				"first_name":       "Tomas",
				"last_name":        "Rivera",
				"email":            "tomas@northwindlabs.io",
				"status":           "lead",
				"lead_score":       55,
				"quality":          "medium",
				"engagement":       "warming",
				"tags":             []string{"webinar"},
				"email_opt_in":     true,
				"sms_opt_in":       true,
				"marketing_opt_in": true,
				"created_at":       seedTime(2026, 1, 27, 11),
				"updated_at":       seedTime(2026, 1, 27, 11),
			},
			{
				"id":               int64(3),
				"contact_id":       "CNT-01J4QD8E2M00000000007G8H9J",
				"organization_id":  "org_lumen",
				"first_name":       "Priya",
				"last_name":        "Shah",
				"email":            "priya.shah@example.com",
				"status":           "lead",
				"lead_score":       40,
				"quality":          "unrated",
				"engagement":       "new",
				"tags":             []string{"form-lead"},
				"email_opt_in":     true,
				"sms_opt_in":       true,
				"marketing_opt_in": false,
				"created_at":       seedTime(2026, 2, 8, 15),
				"updated_at":       seedTime(2026, 2, 8, 15),
			},
		},
		"forms": {
			{
				"id":              int64(1),
				"form_id":         "FRM-01J4QD8E2M0000000000F0R1M2",
				"organization_id": "org_lumen",
				"name":            "Contact Us",
				"slug":            "contact_us",
				"fields": []any{
					map[string]any{"name": "email", "label": "Work email", "type": "email", "required": true, "map_to_contact": "email", "is_identifier": true},
					map[string]any{"name": "first_name", "label": "First name", "type": "text", "map_to_contact": "first_name"},
					map[string]any{"name": "last_name", "label": "Last name", "type": "text", "map_to_contact": "last_name"},
					map[string]any{"name": "message", "label": "How can we help?", "type": "textarea", "required": true},
				},
				"settings": map[string]any{
					"create_contact":     true,
					"update_contact":     true,
					"notification_email": "hello@lumen.agency",
					"webhook_url":        "",
					"redirect_url":       "/thanks",
				},
				"response_count": 0,
				"created_at":     seedTime(2026, 1, 10, 8),
				"updated_at":     seedTime(2026, 1, 10, 8),
			},
			{
				"id":              int64(2),
				"form_id":         "FRM-01J4QD8E2M0000000000F3R4M5",
				"organization_id": "org_lumen",
				"name":            "Project Brief",
				"slug":            "project_brief",
				"fields": []any{
					map[string]any{"name": "email", "label": "Email", "type": "email", "required": true, "map_to_contact": "email", "is_identifier": true},
					map[string]any{"name": "phone", "label": "Phone", "type": "phone", "map_to_contact": "phone"},
					map[string]any{"name": "budget", "label": "Budget range", "type": "select", "options": []string{"<10k", "10-50k", "50k+"}},
					map[string]any{"name": "timeline", "label": "Timeline", "type": "text"},
				},
				"settings": map[string]any{
					"create_contact": true,
					"update_contact": false,
					"webhook_url":    "https://hooks.lumen.agency/project-brief",
				},
				"response_count": 0,
				"created_at":     seedTime(2026, 1, 21, 13),
				"updated_at":     seedTime(2026, 1, 21, 13),
			},
		},
		"calendars": {
			{"id": int64(1), "name": "Team", "color": "#6366f1", "visible": true, "created_at": seedTime(2026, 1, 5, 9)},
			{"id": int64(2), "name": "Client Calls", "color": "#10b981", "visible": true, "created_at": seedTime(2026, 1, 5, 9)},
		},
		"events": {
			{
				"id":          int64(1),
				"calendar_id": int64(2),
				"title":       "Harbor & Pine retainer review",
				"description": "Quarterly review with Maya",
				"start_time":  seedTime(2026, 3, 2, 10),
				"end_time":    seedTime(2026, 3, 2, 11),
				"created_at":  seedTime(2026, 2, 20, 12),
			},
			{
				"id":          int64(2),
				"calendar_id": int64(2),
				"title":       "Northwind discovery call",
				"start_time":  seedTime(2026, 3, 2, 14),
				"end_time":    seedTime(2026, 3, 2, 15),
				"created_at":  seedTime(2026, 2, 24, 9),
			},
			{
				"id":          int64(3),
				"calendar_id": int64(1),
				"title":       "Sprint planning",
				"start_time":  seedTime(2026, 3, 3, 9),
				"end_time":    seedTime(2026, 3, 3, 10),
				"created_at":  seedTime(2026, 2, 25, 17),
			},
		},
		"booking_types": {
			{"id": int64(1), "calendar_id": int64(2), "name": "Intro Call", "duration_minutes": 30, "buffer_minutes": 10, "color": "#10b981"},
			{"id": int64(2), "calendar_id": int64(2), "name": "Strategy Session", "duration_minutes": 60, "buffer_minutes": 15, "color": "#f59e0b"},
		},
		"tags": {
			{"id": int64(1), "name": "retainer", "color": "#6366f1"},
			{"id": int64(2), "name": "priority", "color": "#ef4444"},
			{"id": int64(3), "name": "webinar", "color": "#10b981"},
			{"id": int64(4), "name": "form-lead", "color": "#f59e0b"},
		},
		"activities": {
			{
				"id":          int64(1),
				"activity_id": "ACT-01J4QD8E2M0000000000A0C1T2",
				"contact_id":  "CNT-01J4QD8E2M00000000001A2B3C",
				"type":        "meeting",
				"title":       "Kickoff call",
				"description": "Scoped the spring campaign",
				"created_at":  seedTime(2026, 1, 14, 15),
			},
			{
				"id":          int64(2),
				"activity_id": "ACT-01J4QD8E2M0000000000A3C4T5",
				"contact_id":  "CNT-01J4QD8E2M00000000004D5E6F",
				"type":        "email",
				"title":       "Sent webinar follow-up",
				"created_at":  seedTime(2026, 1, 28, 10),
			},
		},
		"notes": {
			{
				"id":         int64(1),
				"contact_id": "CNT-01J4QD8E2M00000000001A2B3C",
				"body":       "Prefers async updates, Fridays off.",
				"created_at": seedTime(2026, 1, 15, 9),
			},
			{
				"id":         int64(2),
				"contact_id": "CNT-01J4QD8E2M00000000004D5E6F",
				"body":       "Waiting on budget sign-off from their CFO.",
				"created_at": seedTime(2026, 2, 1, 11),
			},
		},
	}
}

func seedTime(year int, month time.Month, day, hour int) time.Time {
	return time.Date(year, month, day, hour, 0, 0, 0, time.UTC)
}
