package conversation

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/pageza/nutrichat/backend/internal/types"
)

// ErrInvalidConditions is returned for health condition answers that are
// neither "none" nor a comma separated list of menu numbers.
var ErrInvalidConditions = errors.New("invalid health conditions")

const (
	minAge, maxAge       = 10, 100
	minWeight, maxWeight = 30.0, 200.0
	minHeight, maxHeight = 100.0, 250.0
)

// step handles one answer. apply validates the input and records it on the
// profile; on rejection it returns the corrective prompt. confirm renders the
// acknowledgement together with the next question.
type step struct {
	apply   func(p *types.UserProfile, input string) (retry string, ok bool)
	next    types.Step
	confirm func(p types.UserProfile) string
}

// steps covers every step that stores an answer and advances. Greeting,
// timeline and completed are handled by the engine.
var steps = map[types.Step]step{
	types.StepAge: {
		apply: func(p *types.UserProfile, in string) (string, bool) {
			age, err := strconv.Atoi(in)
			if err != nil {
				return "Please enter your age as a number (e.g., 25).", false
			}
			if age < minAge || age > maxAge {
				return fmt.Sprintf("Please enter a valid age between %d and %d years.", minAge, maxAge), false
			}
			p.Age = &age
			return "", true
		},
		next: types.StepWeight,
		confirm: func(p types.UserProfile) string {
			return fmt.Sprintf("Age %d noted.\n\nWhat is your current weight in kg?", *p.Age)
		},
	},
	types.StepWeight: {
		apply: func(p *types.UserProfile, in string) (string, bool) {
			w, err := strconv.ParseFloat(in, 64)
			if err != nil {
				return "Please enter your weight as a number (e.g., 65.5).", false
			}
			if !(w >= minWeight && w <= maxWeight) {
				return fmt.Sprintf("Please enter a valid weight between %g and %g kg.", minWeight, maxWeight), false
			}
			p.Weight = &w
			return "", true
		},
		next: types.StepHeight,
		confirm: func(p types.UserProfile) string {
			return fmt.Sprintf("Weight %g kg recorded.\n\nWhat is your height in cm?", *p.Weight)
		},
	},
	types.StepHeight: {
		apply: func(p *types.UserProfile, in string) (string, bool) {
			h, err := strconv.ParseFloat(in, 64)
			if err != nil {
				return "Please enter your height as a number (e.g., 175).", false
			}
			if !(h >= minHeight && h <= maxHeight) {
				return fmt.Sprintf("Please enter a valid height between %g and %g cm.", minHeight, maxHeight), false
			}
			p.Height = &h
			return "", true
		},
		next: types.StepGender,
		confirm: func(p types.UserProfile) string {
			return fmt.Sprintf("Height %g cm noted.\n\nWhat is your gender?\n- Male\n- Female", *p.Height)
		},
	},
	types.StepGender: {
		apply: func(p *types.UserProfile, in string) (string, bool) {
			switch in {
			case "male", "m", "man":
				p.Gender = types.GenderMale
			case "female", "f", "woman":
				p.Gender = types.GenderFemale
			default:
				return "Please specify your gender as 'Male' or 'Female'.", false
			}
			return "", true
		},
		next: types.StepFoodPreference,
		confirm: func(p types.UserProfile) string {
			return fmt.Sprintf("Gender recorded as %s.\n\nWhat is your dietary preference?\n"+
				"- Vegetarian (plant-based only)\n- Non-Vegetarian (includes meat and fish)\n- Both (flexible diet)",
				types.Humanize(string(p.Gender)))
		},
	},
	types.StepFoodPreference: {
		apply: func(p *types.UserProfile, in string) (string, bool) {
			pref, ok := parseFoodPreference(in)
			if !ok {
				return "Please choose your dietary preference:\n- Vegetarian\n- Non-Vegetarian\n- Both (Flexible)", false
			}
			p.FoodPreference = pref
			return "", true
		},
		next: types.StepFoodStyle,
		confirm: func(p types.UserProfile) string {
			return fmt.Sprintf("Dietary preference: %s\n\nWhat is your food style preference?\n"+
				"- Traditional (classic Indian regional foods)\n- Modern (contemporary and fusion cuisine)\n- Both (a mix of the two)",
				types.Humanize(string(p.FoodPreference)))
		},
	},
	types.StepFoodStyle: {
		apply: func(p *types.UserProfile, in string) (string, bool) {
			switch {
			case containsAny(in, "traditional", "classic"):
				p.FoodStyle = types.StyleTraditional
			case containsAny(in, "modern", "contemporary"):
				p.FoodStyle = types.StyleModern
			case containsAny(in, "both", "mix"):
				p.FoodStyle = types.StyleBoth
			default:
				return "Please choose your food style:\n- Traditional\n- Modern\n- Both", false
			}
			return "", true
		},
		next: types.StepCurrentSeason,
		confirm: func(p types.UserProfile) string {
			season := types.Humanize(string(p.CurrentSeason))
			return fmt.Sprintf("Food style: %s\n\nI've detected the current season as %s.\n"+
				"Is this correct, or would you prefer meals for a different season?\n%s- Current (%s) - keep the detected season",
				types.Humanize(string(p.FoodStyle)), season, seasonMenu(), season)
		},
	},
	types.StepCurrentSeason: {
		apply: func(p *types.UserProfile, in string) (string, bool) {
			switch {
			case strings.Contains(in, "winter"):
				p.CurrentSeason = types.SeasonWinter
			case strings.Contains(in, "spring"):
				p.CurrentSeason = types.SeasonSpring
			case containsAny(in, "monsoon", "rainy"):
				p.CurrentSeason = types.SeasonMonsoon
			case containsAny(in, "autumn", "fall"):
				p.CurrentSeason = types.SeasonAutumn
			case containsAny(in, "current", "keep", "yes"):
				if !p.CurrentSeason.Valid() {
					return "Please choose a season:\n" + seasonMenu(), false
				}
			default:
				return "Please choose the season for meal recommendations:\n" + seasonMenu() + "- Current - keep the detected season", false
			}
			return "", true
		},
		next: types.StepRegion,
		confirm: func(p types.UserProfile) string {
			return fmt.Sprintf("Season preference: %s\n\nWhich regional cuisine do you prefer?\n"+
				"- South Indian (rice, sambar, rasam)\n- North Indian (roti, dal, sabzi)",
				types.Humanize(string(p.CurrentSeason)))
		},
	},
	types.StepRegion: {
		apply: func(p *types.UserProfile, in string) (string, bool) {
			switch {
			case strings.Contains(in, "south"):
				p.Region = types.RegionSouthIndian
			case strings.Contains(in, "north"):
				p.Region = types.RegionNorthIndian
			default:
				return "Please choose your regional preference:\n- South Indian\n- North Indian", false
			}
			return "", true
		},
		next: types.StepGoal,
		confirm: func(p types.UserProfile) string {
			return fmt.Sprintf("Regional cuisine: %s\n\nWhat is your primary health goal?\n"+
				"- Weight Loss\n- Weight Gain\n- Maintain Weight",
				types.Humanize(string(p.Region)))
		},
	},
	types.StepGoal: {
		apply: func(p *types.UserProfile, in string) (string, bool) {
			switch {
			case containsAny(in, "loss", "lose", "reduce"):
				p.Goal = types.GoalWeightLoss
			case containsAny(in, "gain", "increase", "build"):
				p.Goal = types.GoalWeightGain
			case containsAny(in, "maintain", "same", "stable"):
				p.Goal = types.GoalMaintain
			default:
				return "Please choose your goal:\n- Weight Loss\n- Weight Gain\n- Maintain Weight", false
			}
			return "", true
		},
		next: types.StepHealthConditions,
		confirm: func(p types.UserProfile) string {
			return fmt.Sprintf("Goal: %s\n\nDo you have any health conditions? "+
				"Type the numbers separated by commas, or 'none'.\n\n%s\nExample: '1,3,7' or 'none'",
				types.Humanize(string(p.Goal)), conditionMenu())
		},
	},
	types.StepHealthConditions: {
		apply: func(p *types.UserProfile, in string) (string, bool) {
			conditions, err := ParseHealthConditions(in)
			if err != nil {
				return "Please enter valid numbers (1-11) separated by commas, or 'none'.\n" +
					"Example: '1,3' for Diabetes and Kidney Stones.", false
			}
			p.HealthConditions = conditions
			return "", true
		},
		next: types.StepCostPreference,
		confirm: func(p types.UserProfile) string {
			return fmt.Sprintf("Health conditions: %s\n\nWhat is your budget preference?\n"+
				"- Low Cost (local, seasonal foods)\n- Medium Cost (moderate variety)\n- High Cost (premium ingredients)",
				conditionList(p.HealthConditions))
		},
	},
	types.StepCostPreference: {
		apply: func(p *types.UserProfile, in string) (string, bool) {
			switch {
			case containsAny(in, "low", "budget", "cheap", "affordable"):
				p.CostPreference = types.CostLow
			case containsAny(in, "medium", "moderate", "mid"):
				p.CostPreference = types.CostMedium
			case containsAny(in, "high", "premium", "expensive"):
				p.CostPreference = types.CostHigh
			default:
				return "Please choose your budget preference:\n- Low Cost\n- Medium Cost\n- High Cost", false
			}
			return "", true
		},
		next: types.StepTimeline,
		confirm: func(p types.UserProfile) string {
			return fmt.Sprintf("Budget: %s Cost\n\nWhat is your goal timeline?\n%s",
				types.Humanize(string(p.CostPreference)), timelineMenu)
		},
	},
}

const (
	greetingMessage = "Hello! I'm your personal diet assistant.\n\n" +
		"I'll build a 7-day meal plan with a vitamin and mineral analysis, traditional and modern options, " +
		"seasonal recommendations, preparation and storage notes and a grocery list.\n\nLet's start! What's your age?"
	restartMessage    = "Let's start over! I'm here to create your diet plan."
	completedMessage  = "Your plan is ready. Reset this chat to create a new plan."
	planFailedMessage = "Sorry, there was an error generating your diet plan. Please try again."
	timelineMenu      = "- Short-term (1-3 months)\n- Mid-term (3-6 months)\n- Long-term (6+ months)"
	timelineRetry     = "Please choose your timeline:\n" + timelineMenu
)

var seasonHints = map[types.Season]string{
	types.SeasonWinter:  "warming foods",
	types.SeasonSpring:  "detox foods",
	types.SeasonMonsoon: "immunity boosting",
	types.SeasonAutumn:  "balancing foods",
}

// non-vegetarian keywords come first because most of them contain "veg"
var (
	nonVegKeywords   = []string{"non-veg", "nonveg", "non_veg", "non veg", "meat", "chicken", "fish"}
	vegKeywords      = []string{"veg", "vegan", "plant"}
	flexibleKeywords = []string{"both", "flexible"}
)

func parseFoodPreference(in string) (types.FoodPreference, bool) {
	switch {
	case containsAny(in, nonVegKeywords...):
		return types.PreferenceNonVegetarian, true
	case containsAny(in, vegKeywords...):
		return types.PreferenceVegetarian, true
	case containsAny(in, flexibleKeywords...):
		return types.PreferenceBoth, true
	}
	return "", false
}

func parseTimeline(in string) (types.Timeline, bool) {
	switch {
	case strings.Contains(in, "short"):
		return types.TimelineShort, true
	case strings.Contains(in, "mid"):
		return types.TimelineMid, true
	case strings.Contains(in, "long"):
		return types.TimelineLong, true
	}
	return "", false
}

// ParseHealthConditions reads a health condition answer. "none", "no",
// "nothing" and "11" mean no conditions; otherwise every comma separated
// token must be a menu number from 1 to 10. Duplicates collapse and the
// result is in menu order.
func ParseHealthConditions(in string) ([]types.HealthCondition, error) {
	in = strings.ToLower(strings.TrimSpace(in))
	switch in {
	case "none", "no", "nothing", "11":
		return []types.HealthCondition{}, nil
	}

	picked := make([]bool, len(types.HealthConditions))
	for _, token := range strings.Split(in, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(token))
		if err != nil || n < 1 || n > len(types.HealthConditions) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidConditions, token)
		}
		picked[n-1] = true
	}

	out := []types.HealthCondition{}
	for i, ok := range picked {
		if ok {
			out = append(out, types.HealthConditions[i])
		}
	}
	return out, nil
}

// labels that differ from the humanized code
var conditionLabels = map[types.HealthCondition]string{
	types.ConditionHypertension: "Hypertension (High BP)",
}

// ConditionLabel returns the menu label of a health condition
func ConditionLabel(c types.HealthCondition) string {
	if label, ok := conditionLabels[c]; ok {
		return label
	}
	return types.Humanize(string(c))
}

func conditionMenu() string {
	var b strings.Builder
	for i, c := range types.HealthConditions {
		fmt.Fprintf(&b, "%d. %s\n", i+1, ConditionLabel(c))
	}
	fmt.Fprintf(&b, "%d. None\n", len(types.HealthConditions)+1)
	return b.String()
}

func conditionList(conditions []types.HealthCondition) string {
	if len(conditions) == 0 {
		return "None"
	}
	names := make([]string, len(conditions))
	for i, c := range conditions {
		names[i] = types.Humanize(string(c))
	}
	return strings.Join(names, ", ")
}

func seasonMenu() string {
	var b strings.Builder
	for _, s := range types.Seasons {
		fmt.Fprintf(&b, "- %s (%s) - %s\n", types.Humanize(string(s)), SeasonMonths[s], seasonHints[s])
	}
	return b.String()
}

func containsAny(s string, words ...string) bool {
	return slices.ContainsFunc(words, func(w string) bool { return strings.Contains(s, w) })
}
