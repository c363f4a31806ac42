package bank

import "lifeline-backend-V1.0/internal/model"

// builtinQuestions is the static first-aid content shipped with the game,
// five questions per difficulty level.
func builtinQuestions() []model.Question {
	return []model.Question{
		// Easy
		{
			ID:         "fa-001",
			Prompt:     "What should you do first when someone is unconscious but breathing normally?",
			Choices:    []string{"Give them water", "Check for a pulse", "Place them in the recovery position", "Slap their face to wake them up"},
			Answer:     2,
			Difficulty: model.Easy,
			Topic:      "unconsciousness",
			Tip:        "The recovery position helps keep their airway open and clear.",
		},
		{
			ID:         "fa-002",
			Prompt:     "What is the first step for treating a minor cut or scrape?",
			Choices:    []string{"Apply a sterile dressing", "Wash the area with soap and water", "Apply antibiotic ointment", "Cover it with a large bandage"},
			Answer:     1,
			Difficulty: model.Easy,
			Topic:      "wound care",
			Tip:        "Cleaning a wound first helps prevent infection.",
		},
		{
			ID:         "fa-003",
			Prompt:     "For an adult nosebleed, what is the correct action?",
			Choices:    []string{"Tilt the head back and pinch the bridge of the nose", "Lie down flat", "Pinch the soft part of the nose and lean forward", "Stuff cotton deep into the nostril"},
			Answer:     2,
			Difficulty: model.Easy,
			Topic:      "bleeding",
			Tip:        "Leaning forward prevents blood from going down the throat.",
		},
		{
			ID:         "fa-004",
			Prompt:     "How should you help someone who is choking but can still cough?",
			Choices:    []string{"Hit their back hard", "Encourage them to keep coughing", "Give abdominal thrusts", "Give them water"},
			Answer:     1,
			Difficulty: model.Easy,
			Topic:      "choking",
			Tip:        "Coughing is the body's natural way to clear blockages.",
		},
		{
			ID:         "fa-005",
			Prompt:     "What should you apply to a minor burn immediately?",
			Choices:    []string{"Ice", "Butter", "Cool running water for 10-20 minutes", "Bandage tightly"},
			Answer:     2,
			Difficulty: model.Easy,
			Topic:      "burns",
			Tip:        "Cool water stops the burning process and reduces pain.",
		},
		// Medium
		{
			ID:         "fa-006",
			Prompt:     "A person has chest pain spreading to their arms and is sweating. What should you do first while waiting for an ambulance?",
			Choices:    []string{"Give them a sugary drink", "Help them into a comfortable position (e.g., half-sitting)", "Make them walk around to improve circulation", "Give them a paper bag to breathe into"},
			Answer:     1,
			Difficulty: model.Medium,
			Topic:      "heart attack",
			Tip:        "Keeping a potential heart attack victim calm and comfortable reduces strain on the heart. Call 911 immediately.",
		},
		{
			ID:         "fa-007",
			Prompt:     "How do you control severe bleeding from a limb wound after applying direct pressure doesn't work?",
			Choices:    []string{"Wash the wound with water", "Apply a tourniquet above the wound", "Apply more dressings on top of the first", "Remove the soaked dressing and apply a new one"},
			Answer:     2,
			Difficulty: model.Medium,
			Topic:      "bleeding",
			Tip:        "Do not remove the original dressing; add more on top to maintain pressure.",
		},
		{
			ID:         "fa-008",
			Prompt:     "What is the correct depth for chest compressions on an adult during CPR?",
			Choices:    []string{"About 1 inch (2.5 cm)", "At least 2 inches (5 cm)", "About 4 inches (10 cm)", "As deep as you can push"},
			Answer:     1,
			Difficulty: model.Medium,
			Topic:      "CPR",
			Tip:        "2 inches (5 cm) is the standard depth to effectively circulate blood.",
		},
		{
			ID:         "fa-009",
			Prompt:     "During a seizure, what is a key safety measure you should take for the person?",
			Choices:    []string{"Hold them down firmly to stop the shaking", "Put something in their mouth to prevent tongue biting", "Clear the area of hard or sharp objects", "Try to give them water immediately after"},
			Answer:     2,
			Difficulty: model.Medium,
			Topic:      "seizures",
			Tip:        "Protecting from injury is key. Never restrain them or put anything in their mouth.",
		},
		{
			ID:         "fa-010",
			Prompt:     "What does 'RICE' stand for when treating sprains and strains?",
			Choices:    []string{"Run, Ice, Call, Emergency", "Rest, Ice, Compression, Elevation", "Reassure, Inspect, Cover, Evacuate", "Rotate, Isolate, Cool, Examine"},
			Answer:     1,
			Difficulty: model.Medium,
			Topic:      "sprains",
			Tip:        "RICE is the standard procedure for managing soft tissue injuries.",
		},
		// Hard
		{
			ID:         "fa-011",
			Prompt:     "A person is pale, cold, clammy, and confused after an injury. They are likely in shock. What should you do?",
			Choices:    []string{"Give them a hot drink", "Have them sit up straight", "Lay them down and elevate their legs (if no leg injury)", "Walk them around slowly"},
			Answer:     2,
			Difficulty: model.Hard,
			Topic:      "shock",
			Tip:        "Elevating the legs helps blood flow back to vital organs in cases of shock.",
		},
		{
			ID:         "fa-012",
			Prompt:     "What does the 'T' in the FAST acronym for stroke recognition stand for?",
			Choices:    []string{"Temperature", "Talk", "Time", "Tingling"},
			Answer:     2,
			Difficulty: model.Hard,
			Topic:      "stroke",
			Tip:        "Time to call emergency services is critical for stroke outcomes. (F-Face, A-Arms, S-Speech, T-Time).",
		},
		{
			ID:         "fa-013",
			Prompt:     "What is the standard ratio of chest compressions to rescue breaths for a single rescuer performing CPR on an adult?",
			Choices:    []string{"15 compressions to 2 breaths", "30 compressions to 2 breaths", "5 compressions to 1 breath", "100 compressions with no breaths"},
			Answer:     1,
			Difficulty: model.Hard,
			Topic:      "CPR",
			Tip:        "30:2 is the universal ratio for adult CPR to balance circulation and oxygenation.",
		},
		{
			ID:         "fa-014",
			Prompt:     "A person is having a severe allergic reaction (anaphylaxis) and has a prescribed epinephrine auto-injector (EpiPen). What should you do?",
			Choices:    []string{"Wait to see if they get better on their own", "Help them use the auto-injector and then call 911", "Give them an antihistamine pill and wait", "Lay them flat and give them water"},
			Answer:     1,
			Difficulty: model.Hard,
			Topic:      "allergic reactions",
			Tip:        "Anaphylaxis is a life-threatening emergency. Use the EpiPen immediately and always call 911.",
		},
		{
			ID:         "fa-015",
			Prompt:     "If you suspect someone has a spinal injury after a fall, what is the most important principle to follow?",
			Choices:    []string{"Help them get up and walk to a chair", "Keep their head, neck, and back perfectly still", "Roll them into the recovery position immediately", "Give them a pillow to make them comfortable"},
			Answer:     1,
			Difficulty: model.Hard,
			Topic:      "spinal injuries",
			Tip:        "Preventing movement is crucial to avoid causing further damage to the spinal cord.",
		},
	}
}
