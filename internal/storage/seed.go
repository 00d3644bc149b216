package storage

import "github.com/aanand-mishra/exam-portal/internal/types"

// DefaultExams is the catalogue written into an empty database on first
// start. Only SOAR13.0 accepts registrations.
func DefaultExams() []types.Exam {
	return []types.Exam{
		{
			Code:             "SOAR13.0",
			Title:            "SOAR 13.0 Test",
			AdmitCardTitle:   "SOAR 13.O EXAMINATION",
			Description:      "Qualify for the next stage by showcasing your technical and club knowledge.",
			Level:            "Beginner",
			Date:             "March 22, 2025",
			Time:             "12:30 PM - 1:30 PM",
			Duration:         "1 hours",
			Fee:              "₹0",
			Venue:            "CIVIL DEPARTMENT, NITA",
			Badge:            "Popular",
			RegistrationOpen: true,
		},
		{
			Code:           "ARDUINO",
			Title:          "Arduino Development",
			AdmitCardTitle: "ARDUINO DEVELOPMENT EXAMINATION",
			Description:    "Comprehensive examination on Arduino programming and project development",
			Level:          "Intermediate",
			Date:           "September 5, 2023",
			Time:           "2:00 PM - 5:00 PM",
			Duration:       "3 hours",
			Fee:            "₹0",
		},
		{
			Code:           "ADV-ROBOTICS",
			Title:          "Advanced Robotics",
			AdmitCardTitle: "ADVANCED ROBOTICS EXAMINATION",
			Description:    "Advanced topics in robotics including AI, machine learning, and computer vision",
			Level:          "Advanced",
			Date:           "October 10, 2023",
			Time:           "9:00 AM - 1:00 PM",
			Duration:       "4 hours",
			Fee:            "₹0",
			Badge:          "Advanced",
		},
		{
			Code:           "IOT",
			Title:          "IoT Systems",
			AdmitCardTitle: "IOT SYSTEMS EXAMINATION",
			Description:    "Internet of Things architecture, protocols, and implementation",
			Level:          "Intermediate",
			Date:           "November 15, 2023",
			Time:           "10:00 AM - 1:00 PM",
			Duration:       "3 hours",
			Fee:            "₹0",
		},
		{
			Code:           "COMPETITION-PREP",
			Title:          "Robotics Competition Prep",
			AdmitCardTitle: "ROBOTICS COMPETITION PREP EXAMINATION",
			Description:    "Preparation for national robotics competitions with focus on strategy and execution",
			Level:          "Advanced",
			Date:           "December 5, 2023",
			Time:           "10:00 AM - 2:00 PM",
			Duration:       "4 hours",
			Fee:            "₹0",
			Badge:          "New",
		},
		{
			Code:           "ROBOTICS-PROGRAMMING",
			Title:          "Programming for Robotics",
			AdmitCardTitle: "PROGRAMMING FOR ROBOTICS EXAMINATION",
			Description:    "Specialized programming concepts for robot control and automation",
			Level:          "Intermediate",
			Date:           "January 10, 2024",
			Time:           "1:00 PM - 4:00 PM",
			Duration:       "3 hours",
			Fee:            "₹0",
		},
	}
}
