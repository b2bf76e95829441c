package domain

// DragSortingOffset is the base draw order given to cards being dragged,
// so the dragged stack renders above all static content.
const DragSortingOffset = 1000

// DefaultTableauOffset is the vertical spacing between cards of a Tableau slot
// used when the configuration does not provide one.
const DefaultTableauOffset = 0.3
