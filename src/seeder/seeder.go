package seeder

import (
	"context"
	"log"

	"Backend-Feedback/src/config"
	"Backend-Feedback/src/models"
	"Backend-Feedback/src/services/accounts"
	"Backend-Feedback/src/services/forms"
)

// SeedAdmin makes sure the bootstrap admin from ADMIN_EMAIL/ADMIN_PASSWORD exists.
func SeedAdmin(ctx context.Context, svc *accounts.Service, seed config.AdminSeed) error {
	return svc.EnsureAdmin(ctx, seed.Email, seed.Password, seed.FullName)
}

// SeedSampleForms creates a sample form, assigned to the first active teacher,
// when the database has no forms yet.
func SeedSampleForms(ctx context.Context, accountSvc *accounts.Service, formSvc *forms.Service, seed config.AdminSeed) error {
	admin, err := accountSvc.Authenticate(ctx, seed.Email, seed.Password)
	if err != nil {
		return err
	}
	user := &models.CurrentUser{ID: admin.ID, Email: admin.Email, Role: admin.Role}

	existing, err := formSvc.ListForms(ctx, user)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		log.Println("✅ Forms already present, skipping sample data")
		return nil
	}

	teachers, err := accountSvc.ListTeachers(ctx)
	if err != nil {
		return err
	}
	if len(teachers) == 0 {
		log.Println("⚠️ No active teacher to assign the sample form to, skipping sample data")
		return nil
	}

	// Sample Form: Student Feedback Form
	sample := &models.FormDto{
		Title:          "Student Feedback Form",
		Description:    "Please provide your feedback about the course and instructor",
		AssignedTo:     teachers[0].ID.Hex(),
		AllowedBatches: []string{"2024", "2025"},
		Questions: []models.QuestionDto{
			{
				Type:         models.ShortAnswer,
				QuestionText: "What did you enjoy most about this course?",
				Required:     false,
			},
			{
				Type:         models.Paragraph,
				QuestionText: "Please describe your overall experience with this course.",
				Required:     true,
			},
			{
				Type:         models.MultipleChoice,
				QuestionText: "How would you rate the course difficulty?",
				Required:     true,
				Options:      []string{"Very Easy", "Easy", "Moderate", "Difficult", "Very Difficult"},
			},
			{
				Type:         models.Checkbox,
				QuestionText: "Which aspects of the course did you find most helpful? (Select all that apply)",
				Options:      []string{"Lectures", "Assignments", "Group Projects", "Office Hours", "Online Resources", "Textbook"},
			},
			{
				Type:         models.Dropdown,
				QuestionText: "How often did you attend class?",
				Required:     true,
				Options:      []string{"Always", "Usually", "Sometimes", "Rarely"},
			},
			{
				Type:         models.StarRating,
				QuestionText: "How would you rate the instructor?",
				Required:     true,
				MaxStars:     10,
			},
			{
				Type:         models.YesNo,
				QuestionText: "Would you recommend this course to others?",
				Required:     true,
			},
		},
	}

	form, err := formSvc.CreateForm(ctx, user, sample)
	if err != nil {
		return err
	}
	log.Printf("✅ Sample form %s created", form.ID.Hex())
	return nil
}
