package specialization

import "time"

// builtinProfiles returns the profiles shipped with the binary. Keyword
// weights and source lists are curated per specialization; anything not
// listed here falls back to the general profile.
func builtinProfiles() []Profile {
	return []Profile{
		{
			Name:             "tech_education",
			PostingFrequency: 0.5,
			ContentSpacing:   48 * time.Hour,
			ExpertiseWeights: map[string]float64{
				"python": 10, "javascript": 9, "react": 8, "node": 7,
				"api": 9, "github": 8, "vscode": 9, "docker": 7,
				"aws": 6, "git": 8, "machine learning": 8, "ai": 9,
				"typescript": 7, "vue": 6, "angular": 6, "backend": 8,
				"frontend": 8, "database": 7, "testing": 7, "debugging": 8,
				"performance": 7, "security": 6, "tutorial": 10, "guide": 9,
				"tips": 10, "tricks": 9, "beginners": 8, "advanced": 7,
				"coding": 10, "programming": 10, "development": 9,
			},
			AudienceKeywords: []string{
				"developer", "programmer", "coding", "tutorial", "guide",
				"learn", "beginner",
			},
			Subreddits: map[string]string{
				"programming":      "https://www.reddit.com/r/programming/hot.json",
				"technology":       "https://www.reddit.com/r/technology/hot.json",
				"webdev":           "https://www.reddit.com/r/webdev/hot.json",
				"learnprogramming": "https://www.reddit.com/r/learnprogramming/hot.json",
				"coding":           "https://www.reddit.com/r/coding/hot.json",
				"python":           "https://www.reddit.com/r/Python/hot.json",
				"javascript":       "https://www.reddit.com/r/javascript/hot.json",
			},
			BlogFeeds: []string{
				"https://github.blog/feed/",
				"https://stackoverflow.blog/feed/",
				"https://www.freecodecamp.org/news/rss/",
				"https://css-tricks.com/feed/",
				"https://realpython.com/atom.xml",
				"https://blog.logrocket.com/feed/",
			},
			AngleTemplates: []string{
				"Developer's guide to %s",
				"Why every programmer should know about %s",
				"Hands-on tutorial: %s",
				"Pro tips for %s",
			},
		},
		{
			Name:             "cooking",
			PostingFrequency: 1.0,
			ContentSpacing:   24 * time.Hour,
			ExpertiseWeights: map[string]float64{
				"recipe": 10, "cooking": 10, "baking": 8, "meal": 9,
				"ingredients": 8, "kitchen": 7, "food": 9, "healthy": 8,
				"quick": 9, "easy": 10, "dinner": 8, "lunch": 7,
				"breakfast": 7, "dessert": 6, "vegetarian": 7, "protein": 6,
				"nutrition": 7, "prep": 8, "techniques": 9,
			},
			AudienceKeywords: []string{
				"recipe", "cook", "meal", "food", "kitchen", "easy", "quick",
			},
			Subreddits: map[string]string{
				"cooking":  "https://www.reddit.com/r/Cooking/hot.json",
				"recipes":  "https://www.reddit.com/r/recipes/hot.json",
				"mealprep": "https://www.reddit.com/r/MealPrepSunday/hot.json",
			},
			BlogFeeds: []string{
				"https://www.seriouseats.com/rss",
				"https://www.allrecipes.com/rss/daily-dish/",
			},
			AngleTemplates: []string{
				"Easy recipe: %s",
				"Healthy version of %s",
				"Quick weeknight %s",
				"Meal prep: %s",
			},
		},
		{
			Name:             "fitness",
			PostingFrequency: 0.7,
			ContentSpacing:   24 * time.Hour,
			ExpertiseWeights: map[string]float64{
				"workout": 10, "exercise": 10, "fitness": 10, "strength": 9,
				"cardio": 8, "muscle": 8, "training": 9, "bodyweight": 7,
				"gym": 7, "nutrition": 8, "weight": 7, "health": 8,
				"flexibility": 6, "endurance": 7, "recovery": 6,
				"beginner": 8, "advanced": 6, "routine": 9, "form": 7,
			},
			AudienceKeywords: []string{
				"workout", "fitness", "exercise", "health", "training", "muscle",
			},
			Subreddits: map[string]string{
				"fitness":           "https://www.reddit.com/r/fitness/hot.json",
				"bodyweightfitness": "https://www.reddit.com/r/bodyweightfitness/hot.json",
			},
			BlogFeeds: []string{
				"https://www.nerdfitness.com/feed/",
			},
			AngleTemplates: []string{
				"Complete workout: %s",
				"Beginner's guide to %s",
				"At-home %s",
				"Science behind %s",
			},
		},
	}
}

// generalProfile is the neutral fallback for unknown specializations: no
// expertise weights (match scores zero), no audience keywords (neutral 0.5),
// and a broad set of general sources.
func generalProfile() Profile {
	return Profile{
		Name:             "general",
		PostingFrequency: 0.5,
		ContentSpacing:   48 * time.Hour,
		Subreddits: map[string]string{
			"programming": "https://www.reddit.com/r/programming/hot.json",
			"technology":  "https://www.reddit.com/r/technology/hot.json",
			"webdev":      "https://www.reddit.com/r/webdev/hot.json",
		},
		BlogFeeds: []string{
			"https://github.blog/feed/",
			"https://stackoverflow.blog/feed/",
		},
	}
}
