// Package multigram implements fixed-capacity symbol tuples (Multigram),
// their pairing into alignment units (JointMultigram), and a
// content-addressed Inventory that assigns each distinct JointMultigram a
// stable integer Index the first time it is seen.
//
// Index 0 is reserved as the "void" index: it denotes an
// anonymized or not-yet-known joint multigram and is never assigned to a
// real one. Inventory insertion is monotone — once a JointMultigram is
// assigned an Index, that Index never changes or is reused, even across
// many training pairs processed over the Inventory's lifetime.
package multigram
