package vision

import (
	"fmt"
	"strings"

	"github.com/shubhamjangid510/coffe-cup/internal/domain"
)

// symbolExamples are traditional Tasseography symbols offered to the vision
// model as vocabulary hints.
var symbolExamples = []string{
	"Man", "Woman", "Child", "Baby", "King", "Queen", "Family",
	"Old Person", "Dancing Person", "Bird", "Butterfly", "Cat",
	"Dog", "Elephant", "Fish", "Fox", "Horse", "Lion", "Owl",
	"Rabbit", "Snake", "Spider", "Turtle", "Wolf", "Sun", "Moon",
	"Stars", "Tree", "Flower", "Leaf", "Cloud", "Fire", "Water",
	"Waves", "Mountain", "River", "Vine", "Arrow", "Anchor",
	"Bag", "Bell", "Book", "Bridge", "Candle", "Crown", "Cup",
	"Door", "Envelope", "Flag", "Heart", "House", "Key",
	"Ladder", "Lock", "Mirror", "Ring", "Ship", "Sword",
	"Umbrella", "Circle", "Triangle", "Square", "Cross",
	"Diamond", "Line (Straight)", "Line (Wavy)", "Spiral",
	"Zigzag", "Initials", "Numbers", "Car", "Plane", "Boat",
	"Train", "Chains", "Eye", "Hand", "Starburst", "Yin-Yang",
	"Apple", "Bread", "Egg", "Acorn", "Balloon", "Bat", "Bee",
	"Bow", "Broken Line", "Chalice", "Clover", "Crescent Moon",
	"Dice", "Dragon", "Eagle", "Feather", "Frog", "Glove", "Hat",
	"Hourglass", "Kite", "Lantern", "Lightning Bolt", "Mask",
	"Nest", "Palm Tree", "Pyramid", "Rose", "Scissors", "Shield",
	"Shoe", "Starfish", "Telescope", "Wheel", "Windmill",
}

// detectionPrompt asks the vision model for a strict JSON array of
// observations found in the trimmed cup image.
func detectionPrompt() string {
	return "You are an expert in Tasseography, the art of reading coffee grounds in an empty cup. " +
		"This image shows coffee traces from a coffee cup. " +
		"Analyze the coffee patterns to identify distinct shapes and tiny symbols. " +
		"For each observation, determine:\n" +
		"- symbol: the shape or symbol (e.g., horse, circle, tree).\n" +
		"- location: where it appears in the image (e.g., top-left, center, bottom-right).\n" +
		"- strength: a score from 1-10 based on clarity and prominence (1 = faint, 10 = very clear).\n" +
		"- meaning: its interpretation in traditional coffee cup reading culture (e.g., journey, unity, growth).\n" +
		"Respond with ONLY a JSON array, no markdown and no prose, for example:\n" +
		`[{"symbol":"horse","location":"top-left","strength":6,"meaning":"journey"},` +
		`{"symbol":"circle","location":"center","strength":8,"meaning":"unity"}]` + "\n" +
		"Provide at least one observation, even if faint, and ensure meanings align with Tasseography traditions. " +
		"You can also make use of these symbol examples if there is a need: " +
		strings.Join(symbolExamples, ", ") + ". " +
		"Do not respond with 'unable to view'; analyze the image provided."
}

// synthesisPrompt asks the language model for the final narrative over the
// aggregated observations.
func synthesisPrompt(language string, readings []domain.Observation) string {
	var b strings.Builder
	b.WriteString("You are a skilled Tasseography practitioner tasked with delivering a detailed coffee cup reading. ")
	b.WriteString("The following symbols were identified from five images of coffee traces in an empty cup. ")
	b.WriteString("Compose a narrative that weaves their meanings into a coherent story, ")
	b.WriteString("considering their locations within each image and strengths (1-10, where higher means stronger influence). ")
	b.WriteString("Base your interpretation on traditional Tasseography culture, addressing the querent directly (e.g., 'You are...'). ")
	b.WriteString("Blend insights about the past, present, and future naturally as the symbols suggest. ")
	b.WriteString("Make it vivid and engaging. ")
	b.WriteString("Do not provide any other text or markdown text, just simply provide the reading.\n\n")
	fmt.Fprintf(&b, "Your response MUST be in the %s language.\n\n", language)

	for _, r := range readings {
		fmt.Fprintf(&b, "Symbol: %s\nLocation: %s\nStrength: %g\nMeaning: %s\n\n",
			r.Symbol, r.Location, r.Strength, r.Meaning)
	}

	return b.String()
}
