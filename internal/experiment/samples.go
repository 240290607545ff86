package experiment

// Sample is one human-written text from the experiment corpus.
type Sample struct {
	// ID uniquely identifies the sample within the corpus.
	ID string

	// Category groups samples by writing style.
	Category string

	// Text is the sample content, confirmed human-written.
	Text string
}

// Samples returns the experiment corpus: twenty human-written samples
// across academic, casual, creative, and technical styles. The corpus
// is fixed so experiment runs stay comparable over time.
func Samples() []Sample {
	return samples
}

var samples = []Sample{
	{
		ID:       "academic_1",
		Category: "academic",
		Text: "The industrial revolution fundamentally altered the relationship between labor " +
			"and capital in Western societies. Prior to mechanization, artisans maintained " +
			"control over both the means of production and the pace of their work. The " +
			"introduction of factory systems disrupted this arrangement, creating a new " +
			"class of wage laborers dependent on machine operators for their livelihood.",
	},
	{
		ID:       "academic_2",
		Category: "academic",
		Text: "Recent studies in cognitive psychology suggest that multitasking is largely a " +
			"myth. When people believe they are performing two tasks simultaneously, they " +
			"are actually switching rapidly between them. This switching carries a cognitive " +
			"cost, measured as increased error rates and slower completion times across " +
			"both tasks compared to sequential processing.",
	},
	{
		ID:       "academic_3",
		Category: "academic",
		Text: "Climate change impacts on marine ecosystems extend beyond rising temperatures. " +
			"Ocean acidification, caused by increased CO2 absorption, threatens calcifying " +
			"organisms like corals and mollusks. Meanwhile, changes in ocean circulation " +
			"patterns alter nutrient distribution, affecting phytoplankton productivity at " +
			"the base of marine food webs.",
	},
	{
		ID:       "academic_4",
		Category: "academic",
		Text: "The concept of linguistic relativity, often attributed to Sapir and Whorf, " +
			"proposes that the structure of a language influences its speakers' worldview. " +
			"While strong versions of this hypothesis have been largely abandoned, weaker " +
			"forms persist in research showing that language affects categorization of " +
			"colors, spatial reasoning, and temporal concepts.",
	},
	{
		ID:       "academic_5",
		Category: "academic",
		Text: "Antibiotic resistance represents one of the most pressing challenges in modern " +
			"medicine. Bacterial populations evolve resistance through natural selection when " +
			"exposed to sub-lethal concentrations of antimicrobial agents. Horizontal gene " +
			"transfer accelerates this process, allowing resistance genes to spread between " +
			"unrelated bacterial species.",
	},
	{
		ID:       "casual_1",
		Category: "casual",
		Text: "I finally tried that new coffee shop on 5th street and honestly it was kind " +
			"of disappointing. The espresso was way too bitter and they charged eight bucks " +
			"for a latte. My friend said the pastries are good but I didnt try any because " +
			"I was already annoyed about the coffee. Might give it another shot though, " +
			"everyone else seems to love it.",
	},
	{
		ID:       "casual_2",
		Category: "casual",
		Text: "So my dog decided to eat an entire sock yesterday and we spent four hours at " +
			"the emergency vet. Turns out he's fine, just needed to be monitored, but my " +
			"wallet is significantly lighter. The vet said labs eat everything and I should " +
			"be more careful. Yeah thanks doc, real helpful advice there.",
	},
	{
		ID:       "casual_3",
		Category: "casual",
		Text: "Been trying to get into running but my knees are not having it. Started with " +
			"couch to 5k and made it about two weeks before everything hurt. My neighbor " +
			"runs marathons and makes it look easy. She told me to get better shoes so I " +
			"spent $150 on some fancy ones and they honestly do help a little.",
	},
	{
		ID:       "casual_4",
		Category: "casual",
		Text: "The meeting that could have been an email happened again today. Forty five " +
			"minutes of my life I won't get back. Someone asked a question that was already " +
			"answered in the doc that was sent out beforehand. I had my camera off and was " +
			"doing laundry the whole time. Pretty sure half the team was too.",
	},
	{
		ID:       "casual_5",
		Category: "casual",
		Text: "Tried to assemble IKEA furniture without the instructions because I thought " +
			"it would be obvious. It was not obvious. Three hours later I had something " +
			"that vaguely resembled a bookshelf but leaned slightly to the left. My " +
			"roommate came home and fixed it in twenty minutes. I'm never doing that again.",
	},
	{
		ID:       "creative_1",
		Category: "creative",
		Text: "The lighthouse keeper hadn't spoken to another person in forty-seven days. " +
			"He marked each one on the wall beside his cot with a stubby pencil, the " +
			"graphite wearing down like his patience. The supply boat was late again. " +
			"He watched the horizon through salt-crusted glass, wondering if they'd " +
			"forgotten about him entirely.",
	},
	{
		ID:       "creative_2",
		Category: "creative",
		Text: "Rain collected in the gutters and ran in thin rivers along the curb. Maria " +
			"stepped over them carefully, her shoes already ruined from yesterday. The " +
			"umbrella she'd borrowed from the office had a broken spoke that poked her " +
			"shoulder every few steps. Three more blocks. She counted them like prayers.",
	},
	{
		ID:       "creative_3",
		Category: "creative",
		Text: "The garden had been his grandmother's pride. Now the roses grew wild, thorns " +
			"catching on his jeans as he pushed through to the back fence. Someone had " +
			"left a pair of gardening gloves on the bench, stiff with age and weather. " +
			"He picked them up and turned them over, half expecting to find her handwriting " +
			"on a tag inside.",
	},
	{
		ID:       "creative_4",
		Category: "creative",
		Text: "The diner closed at midnight but the neon sign stayed on until two. Truck " +
			"drivers pulled into the lot, saw the dark windows, and pulled back out. " +
			"Nobody complained. The sign was company enough on a stretch of highway where " +
			"the next town was forty miles of nothing.",
	},
	{
		ID:       "creative_5",
		Category: "creative",
		Text: "She found the letter wedged between pages 114 and 115 of a library book " +
			"about Arctic exploration. The handwriting was small and precise, blue ink on " +
			"yellowed paper. Dear someone. She read it twice, then three times, then put " +
			"it back exactly where she found it. Some things weren't meant to be kept.",
	},
	{
		ID:       "technical_1",
		Category: "technical",
		Text: "The database migration failed because the foreign key constraint on the " +
			"orders table referenced a column that had been renamed in the previous " +
			"release. Rolling back required dropping the constraint first, then renaming " +
			"the column back, then reapplying the migration with the correct reference. " +
			"We added a pre-migration check to prevent this from happening again.",
	},
	{
		ID:       "technical_2",
		Category: "technical",
		Text: "Memory usage spiked to 94% during the load test because the connection pool " +
			"wasn't releasing idle connections. The default timeout was set to 30 minutes " +
			"which made no sense for a service handling short-lived requests. Dropping it " +
			"to 60 seconds and adding a max pool size of 20 brought memory usage down to " +
			"a stable 45% under the same load.",
	},
	{
		ID:       "technical_3",
		Category: "technical",
		Text: "The API returns a 429 status code when the rate limit is exceeded but the " +
			"retry-after header isn't being set correctly. Clients that respect the header " +
			"are retrying immediately instead of waiting, which makes the problem worse. " +
			"The fix is straightforward: calculate the reset time from the token bucket " +
			"state and include it in the response headers.",
	},
	{
		ID:       "technical_4",
		Category: "technical",
		Text: "We switched from REST to gRPC for the internal service communication and " +
			"saw a 40% reduction in p99 latency. The binary serialization eliminates " +
			"the JSON parsing overhead that was adding 3-5ms per request. The tradeoff " +
			"is debuggability, since you can't just curl the endpoints anymore, but for " +
			"internal services that tradeoff is worth it.",
	},
	{
		ID:       "technical_5",
		Category: "technical",
		Text: "The CI pipeline takes 22 minutes to run because the integration tests spin " +
			"up a full Postgres instance for each test class. Sharing a single database " +
			"with transaction rollbacks between tests would cut that to about 8 minutes " +
			"but requires refactoring the test fixtures. We're planning to do that next " +
			"sprint since the slow pipeline is blocking the team.",
	},
}
