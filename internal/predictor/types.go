package predictor

import "fmt"

// Role is a job role the predictor knows a weight for.
type Role string

const (
	SoftwareEngineer Role = "Software Engineer"
	DataAnalyst      Role = "Data Analyst"
	ProjectManager   Role = "Project Manager"
	DevOps           Role = "DevOps"
	HR               Role = "HR"
	FinanceRole      Role = "Finance"
)

// Roles returns every role in display order
func Roles() []Role {
	return []Role{SoftwareEngineer, DataAnalyst, ProjectManager, DevOps, HR, FinanceRole}
}

// Education is the highest completed degree.
type Education string

const (
	Bachelors Education = "Bachelor's"
	Masters   Education = "Master's"
	PhD       Education = "PhD"
)

// EducationLevels returns every education level in display order
func EducationLevels() []Education {
	return []Education{Bachelors, Masters, PhD}
}

// City is the predictor's location list. It differs from the analyzer's
// work locations: Kolkata and Pune fold into Other.
type City string

const (
	Bangalore City = "Bangalore"
	Hyderabad City = "Hyderabad"
	Mumbai    City = "Mumbai"
	Delhi     City = "Delhi"
	Chennai   City = "Chennai"
	OtherCity City = "Other"
)

// Cities returns every city in display order
func Cities() []City {
	return []City{Bangalore, Hyderabad, Mumbai, Delhi, Chennai, OtherCity}
}

// Industry is the employer's industry.
type Industry string

const (
	IT              Industry = "IT"
	FinanceIndustry Industry = "Finance"
	Healthcare      Industry = "Healthcare"
	Manufacturing   Industry = "Manufacturing"
	OtherIndustry   Industry = "Other"
)

// Industries returns every industry in display order
func Industries() []Industry {
	return []Industry{IT, FinanceIndustry, Healthcare, Manufacturing, OtherIndustry}
}

// Skill is one of the recognised key skills.
type Skill string

const (
	Python     Skill = "Python"
	SQL        Skill = "SQL"
	AWS        Skill = "AWS"
	Excel      Skill = "Excel"
	Java       Skill = "Java"
	Leadership Skill = "Leadership"
)

// Skills returns every recognised skill in display order
func Skills() []Skill {
	return []Skill{Python, SQL, AWS, Excel, Java, Leadership}
}

// ParseSkill validates a skill label
func ParseSkill(label string) (Skill, error) {
	for _, s := range Skills() {
		if string(s) == label {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: skill %q", ErrUnknownLabel, label)
}

// SkillSet is an unordered set of skills.
type SkillSet map[Skill]struct{}

// NewSkillSet builds a set from skills; duplicates collapse.
func NewSkillSet(skills ...Skill) SkillSet {
	set := make(SkillSet, len(skills))
	for _, s := range skills {
		set[s] = struct{}{}
	}
	return set
}

// Len returns the number of distinct skills
func (s SkillSet) Len() int {
	return len(s)
}

// Has reports whether the set contains skill
func (s SkillSet) Has(skill Skill) bool {
	_, ok := s[skill]
	return ok
}
