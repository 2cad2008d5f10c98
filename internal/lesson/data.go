package lesson

// builtinLessons is the demo curriculum shipped with the backend. A real
// deployment replaces it via the lessons file in config.
func builtinLessons() []Detail {
	return []Detail{
		{
			ID:      "water-cycle",
			Title:   "The Water Cycle",
			Summary: "How water moves through Earth's systems.",
			Sections: []Section{
				{
					ID:    "intro",
					Title: "Introduction",
					Content: TextContent("The water cycle, also known as the hydrologic cycle, is a continuous process that circulates water throughout the Earth's atmosphere, land, and oceans. This natural system involves the movement of water through various stages: evaporation, condensation, precipitation, and collection. The water cycle is essential for maintaining life on Earth, as it ensures the distribution of freshwater resources and plays a crucial role in weather patterns and climate regulation."),
				},
				{
					ID:    "stages",
					Title: "Stages of the Water Cycle",
					Content: StepsContent(
						Step{Step: "Evaporation", Description: "Water from oceans, lakes, rivers, and other bodies of water is heated by the sun and changes from liquid to water vapor (gas), rising into the atmosphere."},
						Step{Step: "Condensation", Description: "As water vapor rises higher into the atmosphere, it cools down and condenses back into tiny water droplets, forming clouds."},
						Step{Step: "Precipitation", Description: "When water droplets in clouds become too heavy, they fall back to Earth as rain, snow, sleet, or hail."},
						Step{Step: "Collection", Description: "The fallen water collects in oceans, lakes, rivers, and other bodies of water, or seeps into the ground as groundwater. The cycle then begins again as this water evaporates."},
					),
				},
				{
					ID:    "importance",
					Title: "Importance of the Water Cycle",
					Content: TextContent("The water cycle is fundamental to life on Earth and plays a vital role in maintaining our planet's ecosystems. It ensures the continuous replenishment of freshwater resources, which are essential for drinking, agriculture, and industrial use. The water cycle also supports diverse ecosystems by providing water to plants and animals, influences weather patterns and climate systems, and helps regulate Earth's temperature. Understanding and protecting the water cycle is crucial for sustainable water management and addressing climate change challenges."),
				},
			},
		},
		{
			ID:      "friction",
			Title:   "Friction",
			Summary: "A force that opposes motion when two surfaces, fluids, or materials slide or roll against each other.",
			Sections: []Section{
				{
					ID:    "intro",
					Title: "Introduction",
					Content: TextContent("Friction is a force that resists the relative motion or tendency of motion between two surfaces in contact. It acts in the opposite direction to movement and plays an important role in our daily lives. Without friction, walking, driving, or even holding objects would be impossible, as surfaces would endlessly slide past each other."),
				},
				{
					ID:    "types",
					Title: "Types of Friction",
					Content: StepsContent(
						Step{Step: "Static Friction", Description: "The frictional force that prevents an object from moving when a small force is applied. It keeps objects at rest until the applied force overcomes this resistance."},
						Step{Step: "Kinetic (Sliding) Friction", Description: "The resistive force that acts on an object when it is already sliding across a surface."},
						Step{Step: "Rolling Friction", Description: "The resistance an object faces when it rolls over a surface. Rolling friction is usually weaker than sliding friction (e.g., wheels and ball bearings)."},
						Step{Step: "Fluid Friction", Description: "The resistance caused when an object moves through a fluid (liquid or gas), such as air resistance experienced by a moving car or airplane."},
					),
				},
				{
					ID:    "importance",
					Title: "Importance of Friction",
					Content: TextContent("Friction is essential for everyday life. It allows us to walk and drive by providing grip between our feet, tires, and the ground. Machines use friction for braking and controlling motion, while sports often depend on managing friction for performance. However, friction also produces wear and tear and wastes energy as heat, so reducing unnecessary friction is vital in technology, engineering, and design."),
				},
			},
		},
	}
}
