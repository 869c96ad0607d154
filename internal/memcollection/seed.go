package memcollection

import "github.com/five82/bookshelf/internal/collection"

// SeedData returns example books to pre-populate the collection.
func SeedData() []collection.RawRecord {
	return []collection.RawRecord{
		{Title: "Dune", Author: "Frank Herbert", Genre: "Science Fiction", PublishedYear: 1965, Status: "Available"},
		{Title: "Emma", Author: "Jane Austen", Genre: "Romance", PublishedYear: 1815, Status: "Issued"},
		{Title: "The Left Hand of Darkness", Author: "Ursula K. Le Guin", Genre: "Science Fiction", PublishedYear: 1969, Status: "Available"},
		{Title: "The Hound of the Baskervilles", Author: "Arthur Conan Doyle", Genre: "Mystery", PublishedYear: 1902, Status: "Available"},
		{Title: "Middlemarch", Author: "George Eliot", Genre: "Literary Fiction", PublishedYear: 1871, Status: "Issued"},
		{Title: "The Name of the Rose", Author: "Umberto Eco", Genre: "Mystery", PublishedYear: 1980, Status: "Available"},
		{Title: "Neuromancer", Author: "William Gibson", Genre: "Science Fiction", PublishedYear: 1984, Status: "Available"},
		{Title: "Persuasion", Author: "Jane Austen", Genre: "Romance", PublishedYear: 1817, Status: "Available"},
		{Title: "The Guns of August", Author: "Barbara W. Tuchman", Genre: "History", PublishedYear: 1962, Status: "Issued"},
		{Title: "Beloved", Author: "Toni Morrison", Genre: "Literary Fiction", PublishedYear: 1987, Status: "Available"},
		{Title: "Foundation", Author: "Isaac Asimov", Genre: "Science Fiction", PublishedYear: 1951, Status: "Issued"},
		{Title: "SPQR", Author: "Mary Beard", Genre: "History", PublishedYear: 2015, Status: "Available"},
	}
}
