package fields

// DefaultVocabulary is the fixed skill list matched against resume text.
// Matching is case-insensitive substring search; results keep vocabulary order.
var DefaultVocabulary = []string{
	"python", "java", "javascript", "typescript", "react", "angular", "vue",
	"node.js", "sql", "nosql", "mongodb", "postgresql", "mysql",
	"machine learning", "deep learning", "data science", "ai",
	"data analysis", "statistics", "excel", "tableau", "power bi",
	"project management", "agile", "scrum", "jira",
	"communication", "leadership", "teamwork", "problem solving",
	"aws", "azure", "gcp", "docker", "kubernetes",
	"git", "ci/cd", "devops", "testing", "selenium",
}

var experienceKeywords = []string{"experience", "work history", "employment"}

var educationKeywords = []string{"education", "degree", "academic"}
