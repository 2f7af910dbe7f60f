package calibrator

// DefaultEntries returns the built-in corpus. Ids "60" and "153" each appear
// twice; under the default policy the later entry wins.
func DefaultEntries() []Entry {
	return []Entry{
		{ID: "1", Text: "social pressure", Value: 185, Kind: KindStandard},
		{ID: "2", Text: "rejecting identification with the experiencer", Value: 575, Kind: KindStandard},
		{ID: "3", Text: "microwaved food", Value: 200, Kind: KindStandard},
		{ID: "4", Text: "Tokyo", Value: 205, Kind: KindStandard},
		{ID: "5", Text: "Jesus Christ", Value: 995, Kind: KindStandard},
		{ID: "6", Text: "refusing help (when you need it)", Value: 170, Kind: KindStandard},
		{ID: "7", Text: "integrous investor (occupation)", Value: 205, Kind: KindStandard},
		{ID: "8", Text: "clinical kinesiology", Value: 250, Kind: KindStandard},
		{ID: "9", Text: "Quantum Computing", Value: 199, Kind: KindStandard},
		{ID: "10", Text: "Sense of humor", Value: 325, Kind: KindStandard},
		{ID: "11", Text: "'God is with us'", Value: 555, Kind: KindStandard},
		{ID: "12", Text: "resisting 'being present'", Value: 50, Kind: KindStandard},
		{ID: "13", Text: "keeping physical copies of Doc's books increases the energy of your home", Value: 400, Kind: KindStandard},
		{ID: "14", Text: "praying for others as an occupation (for compensation)", Value: 300, Kind: KindStandard},
		{ID: "15", Text: "chess (board game)", Value: 400, Kind: KindStandard},
		{ID: "16", Text: "AG1 (formerly known as Athletic Greens)", Value: 210, Kind: KindStandard},
		{ID: "17", Text: "Holy Spirit's role", Value: 600, Kind: KindStandard},
		{ID: "18", Text: "Hillsdale College online courses (free)", Value: 370, Kind: KindStandard},
		{ID: "19", Text: "The Joe Rogan Experience Podcast", Value: 190, Kind: KindStandard},
		{ID: "20", Text: "copper bracelet", Value: 204, Kind: KindStandard},
		{ID: "21", Text: "latin cross", Value: 530, Kind: KindStandard},
		{ID: "22", Text: "The King's Speech (2010) movie", Value: 405, Kind: KindStandard},
		{ID: "23", Text: "statement: I am not the body", Value: 600, Kind: KindStandard},
		{ID: "24", Text: "mindfulness", Value: 555, Kind: KindStandard},
		{ID: "25", Text: "Ralph Lauren clothing company", Value: 197, Kind: KindStandard},
		{ID: "26", Text: "deciding to do therapy, seeking help from a therapist", Value: 280, Kind: KindStandard},
		{ID: "27", Text: "rainbow", Value: 300, Kind: KindStandard},
		{ID: "28", Text: "mathematics", Value: 410, Kind: KindStandard},
		{ID: "29", Text: "Ramana Maharshi", Value: 600, Kind: KindStandard},
		{ID: "30", Text: "ChatGPT (AI chatbot)", Value: 190, Kind: KindStandard},
		{ID: "31", Text: "Louis Armstrong - What A Wonderful World", Value: 540, Kind: KindStandard},
		{ID: "32", Text: "Microsoft", Value: 199, Kind: KindStandard},
		{ID: "33", Text: "Google", Value: 195, Kind: KindStandard},
		{ID: "34", Text: "consciousness calibration is all one needs to reach enlightenment", Value: 400, Kind: KindStandard},
		{ID: "35", Text: "Having a business", Value: 285, Kind: KindStandard},
		{ID: "36", Text: "George Floyd", Value: 35, Kind: KindStandard},
		{ID: "37", Text: "fight fire with fire", Value: 200, Kind: KindStandard},
		{ID: "38", Text: "apology", Value: 250, Kind: KindStandard},
		{ID: "39", Text: "monkhood / monasticism", Value: 450, Kind: KindStandard},
		{ID: "40", Text: "chocolate", Value: 290, Kind: KindStandard},
		{ID: "41", Text: "chocolate confections", Value: 390, Kind: KindStandard},
		{ID: "42", Text: "tarriffs", Value: 200, Kind: KindStandard},
		{ID: "43", Text: "programmer", Value: 370, Kind: KindStandard},
		{ID: "44", Text: "Having one's Level of consciousness calibrated", Value: 500, Kind: KindStandard},
		{ID: "45", Text: "Making your bed every morning", Value: 205, Kind: KindStandard},
		{ID: "46", Text: "energy field of an in-person 12-step meeting", Value: 490, Kind: KindStandard},
		{ID: "47", Text: "contemplating 'I'", Value: 570, Kind: KindStandard},
		{ID: "48", Text: "reverse engineering", Value: 205, Kind: KindStandard},
		{ID: "49", Text: "violence", Value: 15, Kind: KindStandard},
		{ID: "50", Text: "existence is forever", Value: 690, Kind: KindStandard},
		{ID: "51", Text: "appearance is not essence", Value: 540, Kind: KindStandard},
		{ID: "52", Text: "dancing as a spiritual practice", Value: 500, Kind: KindStandard},
		{ID: "53", Text: "listening to a Dr. Hawkins lecture", Value: 480, Kind: KindStandard},
		{ID: "54", Text: "adopting pets from animal shelters as rescues", Value: 350, Kind: KindStandard},
		{ID: "55", Text: "ignatian retreat", Value: 350, Kind: KindStandard},
		{ID: "56", Text: "wrapping presents and giving them to each other for christmas", Value: 350, Kind: KindStandard},
		{ID: "57", Text: "large-scale biogas production", Value: 194, Kind: KindStandard},
		{ID: "58", Text: "small-scale biogas production", Value: 204, Kind: KindStandard},
		{ID: "59", Text: "germany", Value: 220, Kind: KindStandard},
		{ID: "60", Text: "inner child (ACA concept)", Value: 395, Kind: KindStandard},
		{ID: "60", Text: "inner child (ACA concept)", Value: 395, Kind: KindStandard},
		{ID: "61", Text: "visualizing oneself being protected by Doc", Value: 560, Kind: KindStandard},
		{ID: "62", Text: "law of attraction", Value: 200, Kind: KindStandard},
		{ID: "63", Text: "law of assumption (for manifesting)", Value: 210, Kind: KindStandard},
		{ID: "64", Text: "fear of death", Value: 5, Kind: KindStandard},
		{ID: "65", Text: "panic attack", Value: 10, Kind: KindStandard},
		{ID: "66", Text: "self-punishment", Value: 20, Kind: KindStandard},
		{ID: "67", Text: "intrusive thought", Value: 25, Kind: KindStandard},
		{ID: "68", Text: "dumpster diving for food", Value: 30, Kind: KindStandard},
		{ID: "69", Text: "self-judging instinct", Value: 35, Kind: KindStandard},
		{ID: "70", Text: "lust", Value: 40, Kind: KindStandard},
		{ID: "71", Text: "human body", Value: 45, Kind: KindStandard},
		{ID: "72", Text: "ritual instinct", Value: 55, Kind: KindStandard},
		{ID: "73", Text: "giving away your power", Value: 60, Kind: KindStandard},
		{ID: "74", Text: "laziness", Value: 65, Kind: KindStandard},
		{ID: "75", Text: "ban on religion", Value: 70, Kind: KindStandard},
		{ID: "76", Text: "self-sabaotage", Value: 75, Kind: KindStandard},
		{ID: "77", Text: "feeling lonely", Value: 80, Kind: KindStandard},
		{ID: "78", Text: "melancholy", Value: 85, Kind: KindStandard},
		{ID: "79", Text: "hell does not exist", Value: 90, Kind: KindStandard},
		{ID: "80", Text: "snoring", Value: 95, Kind: KindStandard},
		{ID: "81", Text: "poverty", Value: 100, Kind: KindStandard},
		{ID: "82", Text: "cheating (infidelity)", Value: 110, Kind: KindStandard},
		{ID: "83", Text: "mass media's average level of truth", Value: 115, Kind: KindStandard},
		{ID: "84", Text: "low self esteem", Value: 120, Kind: KindStandard},
		{ID: "85", Text: "awkward silence", Value: 125, Kind: KindStandard},
		{ID: "86", Text: "all suffering is due to external events", Value: 130, Kind: KindStandard},
		{ID: "87", Text: "heartache", Value: 135, Kind: KindStandard},
		{ID: "88", Text: "inability to calibrate", Value: 140, Kind: KindStandard},
		{ID: "89", Text: "binge-watching", Value: 145, Kind: KindStandard},
		{ID: "90", Text: "dirty talk between lovers", Value: 150, Kind: KindStandard},
		{ID: "91", Text: "stubborn", Value: 155, Kind: KindStandard},
		{ID: "92", Text: "all suffering is self-created", Value: 160, Kind: KindStandard},
		{ID: "93", Text: "superiority complex", Value: 165, Kind: KindStandard},
		{ID: "94", Text: "attraction to things", Value: 170, Kind: KindStandard},
		{ID: "95", Text: "greenhouse gas theory of global warming", Value: 175, Kind: KindStandard},
		{ID: "96", Text: "justified force", Value: 180, Kind: KindStandard},
		{ID: "97", Text: "urgent", Value: 190, Kind: KindStandard},
		{ID: "98", Text: "you have to make love work", Value: 195, Kind: KindStandard},
		{ID: "99", Text: "love just is and works", Value: 440, Kind: KindStandard},
		{ID: "100", Text: "pretending every desire is fullfilled (spiritual practice)", Value: 560, Kind: KindStandard},
		{ID: "101", Text: "wishful thinking", Value: 145, Kind: KindStandard},
		{ID: "102", Text: "being a blessing to the world", Value: 500, Kind: KindStandard},
		{ID: "103", Text: "Leonardo DiCaprio", Value: 200, Kind: KindStandard},
		{ID: "104", Text: "Crucifix", Value: 495, Kind: KindStandard},
		{ID: "105", Text: "contemplation: How am I aware or even know that I exist?", Value: 590, Kind: KindStandard},
		{ID: "106", Text: "Consciousness is God", Value: 1000, Kind: KindStandard},
		{ID: "107", Text: "One Big Beautiful Bill Act ", Value: 203, Kind: KindStandard},
		{ID: "108", Text: "benevolent dictatorship", Value: 200, Kind: KindStandard},
		{ID: "109", Text: "Forgive everything that is witnessed and experienced, no matter what", Value: 560, Kind: KindStandard},
		{ID: "110", Text: "dogs", Value: 250, Kind: KindStandard},
		{ID: "111", Text: "cow", Value: 195, Kind: KindStandard},
		{ID: "112", Text: "innocence", Value: 600, Kind: KindStandard},
		{ID: "113", Text: "faith", Value: 520, Kind: KindStandard},
		{ID: "114", Text: "light-bulb moment", Value: 400, Kind: KindStandard},
		{ID: "115", Text: "aesthetic appreciation", Value: 370, Kind: KindStandard},
		{ID: "116", Text: "Netflix", Value: 195, Kind: KindStandard},
		{ID: "117", Text: "Sacrament of Reconciliation or Confession", Value: 495, Kind: KindStandard},
		{ID: "118", Text: "Fox News", Value: 200, Kind: KindStandard},
		{ID: "119", Text: "Alex Jones", Value: 160, Kind: KindStandard},
		{ID: "120", Text: "statement: loving others is no substitute for loving yourself", Value: 570, Kind: KindStandard},
		{ID: "121", Text: "all I need is just to be", Value: 460, Kind: KindStandard},
		{ID: "122", Text: "letting go by shaking", Value: 530, Kind: KindStandard},
		{ID: "123", Text: "Letting go for emotional liberation and transcendence of human limitations", Value: 540, Kind: KindStandard},
		{ID: "124", Text: "Letting go as a means to pursue enlightenment", Value: 570, Kind: KindStandard},
		{ID: "125", Text: "I am my own worst enemy", Value: 440, Kind: KindStandard},
		{ID: "126", Text: "laughing (energy)", Value: 330, Kind: KindStandard},
		{ID: "127", Text: "one can only go as high as they have been low", Value: 590, Kind: KindStandard},
		{ID: "128", Text: "Your room is an externalization of your mind", Value: 400, Kind: KindStandard},
		{ID: "129", Text: "social worker (occupation)", Value: 245, Kind: KindStandard},
		{ID: "130", Text: "energy to 'bless them that curse you'", Value: 550, Kind: KindStandard},
		{ID: "131", Text: "talking to God like to a therapist", Value: 460, Kind: KindStandard},
		{ID: "132", Text: "position: Doc shouldn't have taught consciousness calibration", Value: 60, Kind: KindStandard},
		{ID: "133", Text: "refusing negativity", Value: 560, Kind: KindStandard},
		{ID: "134", Text: "peace be with you", Value: 570, Kind: KindStandard},
		{ID: "135", Text: "redemption", Value: 540, Kind: KindStandard},
		{ID: "136", Text: "dictator", Value: 50, Kind: KindStandard},
		{ID: "137", Text: "Power vs. Force, by David R. Hawkins", Value: 570, Kind: KindStandard},
		{ID: "138", Text: "Alan Watts", Value: 390, Kind: KindStandard},
		{ID: "139", Text: "Tao Te Ching by Lao Tzu", Value: 550, Kind: KindStandard},
		{ID: "140", Text: "The Matrix (1999) movie", Value: 150, Kind: KindStandard},
		{ID: "141", Text: "may all be free of the weight of this world", Value: 610, Kind: KindStandard},
		{ID: "142", Text: "walking (exercise)", Value: 220, Kind: KindStandard},
		{ID: "143", Text: "Wikipedia", Value: 203, Kind: KindStandard},
		{ID: "144", Text: "the Presence of God as self-esteem", Value: 560, Kind: KindStandard},
		{ID: "145", Text: "past life regression", Value: 290, Kind: KindStandard},
		{ID: "146", Text: "juggling", Value: 215, Kind: KindStandard},
		{ID: "147", Text: "not seeing sin in anyone / anywhere", Value: 575, Kind: KindStandard},
		{ID: "148", Text: "What can frighten me, when I let all things be exactly as they are?", Value: 560, Kind: KindStandard},
		{ID: "149", Text: "to comfort another ", Value: 350, Kind: KindStandard},
		{ID: "150", Text: "perfecting one's intention", Value: 550, Kind: KindStandard},
		{ID: "151", Text: "being a blessing to this world", Value: 500, Kind: KindStandard},
		{ID: "152", Text: "the most dangerous thing on the planet is the spiritualized ego", Value: 550, Kind: KindStandard},
		{ID: "153", Text: "God's will is All there is", Value: 580, Kind: KindStandard},
		{ID: "153", Text: "I let Christ let go for me", Value: 580, Kind: KindStandard},
		{ID: "154", Text: "pathway of moderation", Value: 560, Kind: KindStandard},
		{ID: "155", Text: "alcohoilism can be cured", Value: 550, Kind: KindStandard},
		{ID: "156", Text: "the whole universe shames you", Value: 0, Kind: KindStandard},
		{ID: "157", Text: "the whole universe loves you", Value: 599.99, Kind: KindStandard},
		{ID: "158", Text: "The degree of one’s faith in a practice or pathway empowers it", Value: 510, Kind: KindStandard},
		{ID: "159", Text: "I love you", Value: 490, Kind: KindStandard},
		{ID: "160", Text: "I bless you", Value: 505, Kind: KindStandard},
		{ID: "161", Text: "wear the world like a loose garment", Value: 490, Kind: KindStandard},
		{ID: "162", Text: "aluminum recycling", Value: 210, Kind: KindStandard},
		{ID: "163", Text: "plastic bottle recyling", Value: 195, Kind: KindStandard},
		{ID: "164", Text: "paper/cardboard recycling", Value: 190, Kind: KindStandard},
		{ID: "165", Text: "glass bottle recycling", Value: 190, Kind: KindStandard},
		{ID: "166", Text: "happiness", Value: 385, Kind: KindStandard},
		{ID: "167", Text: "seeing the world through rose-tinted glasses", Value: 185, Kind: KindStandard},
		{ID: "168", Text: "seeing only the best in others or oneself", Value: 190, Kind: KindStandard},
		{ID: "169", Text: "no mercy for the small-self", Value: 30, Kind: KindStandard},
		{ID: "170", Text: "a human with bad karma can reincarnate as an animal", Value: 100, Kind: KindStandard},
		{ID: "171", Text: "ignoring someone so they will like you", Value: 150, Kind: KindStandard},
		{ID: "172", Text: "karmic merit", Value: 470, Kind: KindStandard},
		{ID: "173", Text: "matra: I love myself", Value: 530, Kind: KindStandard},
	}
}

// DefaultLevels returns the built-in reference map, highest level first.
func DefaultLevels() []Entry {
	return []Entry{
		{ID: "level_1000", Text: "The Absolute", Value: 1000, Kind: KindStandard},
		{ID: "level_900", Text: "Final Door", Value: 900, Kind: KindStandard},
		{ID: "level_850", Text: "Allness", Value: 850, Kind: KindStandard},
		{ID: "level_800", Text: "The Void", Value: 800, Kind: KindStandard},
		{ID: "level_750", Text: "Full Enlightenment", Value: 750, Kind: KindStandard},
		{ID: "level_700", Text: "Eternal Life", Value: 700, Kind: KindStandard},
		{ID: "level_600", Text: "Enlightenment", Value: 600, Kind: KindStandard},
		{ID: "level_550", Text: "Unconditional Love", Value: 550, Kind: KindStandard},
		{ID: "level_500", Text: "Love", Value: 500, Kind: KindStandard},
		{ID: "level_450", Text: "Nobleness", Value: 450, Kind: KindStandard},
		{ID: "level_400", Text: "Intellect", Value: 400, Kind: KindStandard},
		{ID: "level_350", Text: "Acceptance", Value: 350, Kind: KindStandard},
		{ID: "level_300", Text: "Willingness", Value: 300, Kind: KindStandard},
		{ID: "level_250", Text: "Higher Mind / Trust", Value: 250, Kind: KindStandard},
		{ID: "level_200", Text: "Integrity / Courage", Value: 200, Kind: KindStandard},
		{ID: "level_190", Text: "Lower Mind", Value: 190, Kind: KindStandard},
		{ID: "level_170", Text: "Pride", Value: 170, Kind: KindStandard},
		{ID: "level_150", Text: "Anger / Ego", Value: 150, Kind: KindStandard},
		{ID: "level_125", Text: "Desire", Value: 125, Kind: KindStandard},
		{ID: "level_100", Text: "Fear", Value: 100, Kind: KindStandard},
		{ID: "level_75", Text: "Grief", Value: 75, Kind: KindStandard},
		{ID: "level_50", Text: "Apathy", Value: 50, Kind: KindStandard},
		{ID: "level_25", Text: "Guilt", Value: 25, Kind: KindStandard},
		{ID: "level_15", Text: "Shame", Value: 15, Kind: KindStandard},
		{ID: "level_5", Text: "Terror / Death", Value: 5, Kind: KindStandard},
		{ID: "level_1", Text: "Spiritual Darkness", Value: 1, Kind: KindStandard},
	}
}
