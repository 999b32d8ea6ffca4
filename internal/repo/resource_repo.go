package repo

import "github.com/xxxsen/examprep/internal/model"

var defaultResources = model.Resources{
	Links: []model.ResourceLink{
		{Title: "GeeksforGeeks", URL: "https://www.geeksforgeeks.org/", Category: "Computer Science"},
		{Title: "W3Schools", URL: "https://www.w3schools.com/", Category: "Web Development"},
		{Title: "Stack Overflow", URL: "https://stackoverflow.com/", Category: "Problem Solving"},
		{Title: "MDN Web Docs", URL: "https://developer.mozilla.org/", Category: "Web Development"},
		{Title: "LeetCode", URL: "https://leetcode.com/", Category: "Coding Practice"},
	},
	Certifications: []model.Certification{
		{Name: "Google IT Support Professional Certificate", Provider: "Coursera", Category: "IT Support"},
		{Name: "AWS Certified Cloud Practitioner", Provider: "Amazon", Category: "Cloud Computing"},
		{Name: "Microsoft Azure Fundamentals", Provider: "Microsoft", Category: "Cloud Computing"},
		{Name: "CompTIA A+", Provider: "CompTIA", Category: "IT Fundamentals"},
		{Name: "Python for Everybody", Provider: "Coursera", Category: "Programming"},
	},
}

type ResourceRepo struct{}

func NewResourceRepo() *ResourceRepo {
	return &ResourceRepo{}
}

// All returns a copy so callers may not alter the shared catalogue.
func (r *ResourceRepo) All() model.Resources {
	out := model.Resources{
		Links:          make([]model.ResourceLink, len(defaultResources.Links)),
		Certifications: make([]model.Certification, len(defaultResources.Certifications)),
	}
	copy(out.Links, defaultResources.Links)
	copy(out.Certifications, defaultResources.Certifications)
	return out
}
