package topic

// Catalog is the built-in topic set covering Georgia Standards S7L1 through
// S7L5. IDs are stable slugs so reseeding updates rows in place.
var Catalog = []Topic{
	{
		ID:          "cells-organelles",
		Name:        "Cells & Organelles",
		Standard:    "S7L2",
		Description: "Cell structures, organelles, and their functions. Differences between plant and animal cells. Prokaryotic vs. eukaryotic cells.",
		ExpectedConcepts: []string{
			"Cell membrane controls what enters and exits the cell",
			"Nucleus contains DNA and controls cell activities",
			"Mitochondria produce energy (ATP) through cellular respiration",
			"Chloroplasts capture sunlight for photosynthesis (plant cells only)",
			"Cell wall provides structure and support (plant cells only)",
			"Ribosomes make proteins",
			"Vacuoles store water, nutrients, and waste",
			"Plant cells have chloroplasts, cell walls, and large central vacuoles",
			"Animal cells lack cell walls and chloroplasts",
			"Prokaryotic cells lack a nucleus; eukaryotic cells have a nucleus",
		},
		CommonMisconceptions: []string{
			"Cells are flat and two-dimensional (they are actually 3D)",
			"Only plant cells have cell membranes (both plant and animal cells do)",
			"Mitochondria are only in animal cells (they are in both plant and animal cells)",
			"The cell wall and cell membrane are the same thing",
			"All cells look the same regardless of function",
		},
	},
	{
		ID:          "diversity-living-organisms",
		Name:        "Diversity of Living Organisms",
		Standard:    "S7L1",
		Description: "Classification of organisms, taxonomy, characteristics of the six kingdoms, and how organisms are scientifically compared.",
		ExpectedConcepts: []string{
			"Organisms are classified into groups based on shared characteristics",
			"The levels of classification: Domain, Kingdom, Phylum, Class, Order, Family, Genus, Species",
			"The three domains are Bacteria, Archaea, and Eukarya",
			"Scientists use dichotomous keys to identify organisms",
			"Organisms can be unicellular or multicellular",
			"Organisms can be autotrophs (make own food) or heterotrophs (consume food)",
			"Binomial nomenclature uses genus and species names",
			"Structural and behavioral adaptations help organisms survive",
		},
		CommonMisconceptions: []string{
			"All bacteria are harmful (many bacteria are beneficial)",
			"Fungi are plants (fungi are their own kingdom)",
			"Classification groups never change (they are updated as new evidence is found)",
			"Organisms in the same kingdom are very similar (there is great diversity within kingdoms)",
		},
	},
	{
		ID:          "levels-of-organization",
		Name:        "Levels of Organization",
		Standard:    "S7L2",
		Description: "How cells, tissues, organs, and organ systems work together to maintain the basic needs of organisms.",
		ExpectedConcepts: []string{
			"Cells are the basic unit of life",
			"Tissues are groups of similar cells working together",
			"Organs are made of different tissues working together",
			"Organ systems are groups of organs working together",
			"The levels of organization: cell → tissue → organ → organ system → organism",
			"Different cell types have specialized functions",
			"Homeostasis is maintaining a stable internal environment",
			"The body's organ systems interact with each other",
		},
		CommonMisconceptions: []string{
			"All cells in the body are the same (cells are specialized)",
			"Organs work independently without interacting",
			"A tissue is the same as an organ",
			"Homeostasis means the body stays exactly the same at all times",
		},
	},
	{
		ID:          "reproduction-genetics",
		Name:        "Reproduction & Genetics",
		Standard:    "S7L3",
		Description: "Sexual and asexual reproduction, DNA, genes, chromosomes, inherited vs. acquired traits, and genetic variation.",
		ExpectedConcepts: []string{
			"Asexual reproduction involves one parent and produces genetically identical offspring",
			"Sexual reproduction involves two parents and produces genetically unique offspring",
			"DNA carries genetic information in chromosomes",
			"Genes are segments of DNA that code for specific traits",
			"Inherited traits are passed from parents to offspring through genes",
			"Acquired traits are developed during an organism's lifetime and are not inherited",
			"Sexual reproduction increases genetic variation",
			"Mitosis produces two identical cells for growth and repair",
			"Meiosis produces sex cells (gametes) with half the chromosomes",
			"Dominant and recessive alleles determine trait expression",
		},
		CommonMisconceptions: []string{
			"Acquired traits (like muscles from exercise) can be inherited",
			"Asexual reproduction always produces weaker offspring",
			"DNA and genes are different things (genes are part of DNA)",
			"All traits are determined by a single gene",
			"Dominant traits are always more common than recessive traits",
		},
	},
	{
		ID:          "ecosystems-interdependence",
		Name:        "Ecosystems & Interdependence",
		Standard:    "S7L4",
		Description: "Ecosystems, food webs, energy flow, symbiotic relationships, cycling of matter, and human impact on ecosystems.",
		ExpectedConcepts: []string{
			"Energy flows through ecosystems from producers to consumers to decomposers",
			"Producers (autotrophs) make their own food through photosynthesis",
			"Consumers (heterotrophs) get energy by eating other organisms",
			"Decomposers break down dead organisms and recycle nutrients",
			"Food webs show interconnected food chains in an ecosystem",
			"Energy decreases as it moves up trophic levels (10% rule)",
			"Symbiotic relationships: mutualism, commensalism, parasitism",
			"Matter is recycled through ecosystems (water cycle, carbon cycle, nitrogen cycle)",
			"Changes in one part of an ecosystem affect the whole system",
			"Human activities can disrupt ecosystems",
		},
		CommonMisconceptions: []string{
			"Energy is recycled in ecosystems (energy flows, matter is recycled)",
			"Decomposers are not important to ecosystems",
			"All relationships between organisms are competitive",
			"Food chains are linear and simple (food webs are complex networks)",
			"Removing one species from a food web has no effect on others",
		},
	},
	{
		ID:          "evolution-natural-selection",
		Name:        "Evolution & Natural Selection",
		Standard:    "S7L5",
		Description: "Theory of evolution, natural selection, adaptation, fossil evidence, and how inherited characteristics change over time.",
		ExpectedConcepts: []string{
			"Evolution is the change in inherited characteristics of a population over time",
			"Natural selection is the process where organisms with favorable traits survive and reproduce more",
			"Variation exists within populations due to genetic differences",
			"Adaptations are traits that help organisms survive in their environment",
			"Fossil evidence supports the theory of evolution",
			"Organisms with similar structures may share a common ancestor (homologous structures)",
			"Environmental changes can drive natural selection",
			"Evolution occurs in populations, not individuals",
			"Organisms do not choose to evolve or adapt",
		},
		CommonMisconceptions: []string{
			"Individual organisms can evolve during their lifetime",
			"Organisms choose to adapt or evolve on purpose",
			"Evolution means one species turns into another species suddenly",
			"Humans evolved from modern monkeys (humans and monkeys share a common ancestor)",
			"Only the strongest survive (fitness means reproductive success, not physical strength)",
			"Evolution is 'just a theory' (scientific theories are well-supported explanations)",
		},
	},
}
